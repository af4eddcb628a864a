package roster

import (
	"testing"

	"tableflip.dev/senryoku/pkg/fleet"
)

func catalogIndex(t *testing.T) *fleet.Index {
	t.Helper()
	ix, err := fleet.NewIndex(fleet.Document{Items: []fleet.Entry{
		{Name: "reliat", Series: "reliat", Category: fleet.Frigate},
		{Name: "kirov", Series: "kirov", Category: fleet.Cruiser},
		{Name: "vitas a021", Series: "vitas", Category: fleet.Fighter},
		{Name: "cv3000 corvette bay", Series: "cv3000 modules", Category: fleet.CarrierModule},
	}})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	return ix
}

func TestCatalogMasterOrderAndDefaults(t *testing.T) {
	ix := catalogIndex(t)
	s := NewState()

	list := s.Catalog(ix, fleet.GroupAll, "")
	if len(list) != 4 {
		t.Fatalf("every catalog item appears regardless of ownership, got %d", len(list))
	}
	if list[0].Name != "reliat" || list[3].Name != "cv3000 corvette bay" {
		t.Fatalf("catalog must keep master order, got %v", list)
	}
	for _, it := range list {
		if it.Type != UnregisteredType {
			t.Fatalf("items no one recorded default to %q, got %q", UnregisteredType, it.Type)
		}
	}
}

func TestCatalogFirstSeenTypeWins(t *testing.T) {
	ix := catalogIndex(t)
	s := NewState()
	s.EnsureUser("bob")
	s.EnsureUser("alice")
	s.ToggleOwned("bob", Item{Name: "kirov", Type: "heavy"})
	s.ToggleOwned("alice", Item{Name: "kirov", Type: "cruiser"})

	list := s.Catalog(ix, fleet.GroupAll, "kirov")
	if len(list) != 1 {
		t.Fatalf("expected one match, got %v", list)
	}
	// Users visit in sorted order, so alice's label wins deterministically.
	if list[0].Type != "cruiser" {
		t.Fatalf("expected first-seen type %q, got %q", "cruiser", list[0].Type)
	}
}

func TestCatalogGroupFilter(t *testing.T) {
	ix := catalogIndex(t)
	s := NewState()

	small := s.Catalog(ix, fleet.GroupSmallCraft, "")
	if len(small) != 1 || small[0].Name != "reliat" {
		t.Fatalf("expected only the frigate, got %v", small)
	}
	mods := s.Catalog(ix, fleet.GroupModules, "")
	if len(mods) != 1 || mods[0].Name != "cv3000 corvette bay" {
		t.Fatalf("expected only the module, got %v", mods)
	}
	air := s.Catalog(ix, fleet.GroupAircraft, "")
	if len(air) != 1 || air[0].Name != "vitas a021" {
		t.Fatalf("expected only the fighter, got %v", air)
	}
}

func TestCatalogQueryFilter(t *testing.T) {
	ix := catalogIndex(t)
	s := NewState()

	list := s.Catalog(ix, fleet.GroupAll, " vitas ")
	if len(list) != 1 || list[0].Name != "vitas a021" {
		t.Fatalf("expected substring match on vitas, got %v", list)
	}
	if got := s.Catalog(ix, fleet.GroupAll, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
