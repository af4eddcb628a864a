package roster

import (
	"testing"

	"tableflip.dev/senryoku/pkg/fleet"
)

func totalsIndex(t *testing.T) *fleet.Index {
	t.Helper()
	ix, err := fleet.NewIndex(fleet.Document{Items: []fleet.Entry{
		{Name: "kirov", Series: "kirov", Category: fleet.Cruiser},
		{Name: "kirov reinforced type", Series: "kirov", Category: fleet.Cruiser},
		{Name: "ranger", Series: "ranger", Category: fleet.Cruiser},
		{Name: "reliat", Series: "reliat", Category: fleet.Frigate},
		{Name: "cv3000 corvette bay", Series: "cv3000 modules", Category: fleet.CarrierModule},
	}})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	return ix
}

func TestTotalsCountsDistinctSeriesOnce(t *testing.T) {
	ix := totalsIndex(t)
	s := NewState()
	s.EnsureUser("alice")

	// Two kirov variants share a series: their 10 points count once.
	s.ToggleOwned("alice", Item{Name: "kirov"})
	s.ToggleOwned("alice", Item{Name: "kirov reinforced type"})
	s.ToggleOwned("alice", Item{Name: "ranger"})
	s.SetSeriesPoint("alice", "kirov", PointOf(10))
	s.SetSeriesPoint("alice", "ranger", PointOf(5))

	got := s.Totals("alice", ix)
	if got[fleet.Cruiser] != 15 {
		t.Fatalf("expected 15 cruiser points, got %d", got[fleet.Cruiser])
	}
}

func TestTotalsSkipUnownedSeriesPoints(t *testing.T) {
	ix := totalsIndex(t)
	s := NewState()
	s.EnsureUser("alice")

	// Points typed for a series the user does not own contribute nothing.
	s.SetSeriesPoint("alice", "kirov", PointOf(10))

	got := s.Totals("alice", ix)
	if got[fleet.Cruiser] != 0 {
		t.Fatalf("expected 0 without ownership, got %d", got[fleet.Cruiser])
	}
}

func TestTotalsAddUnusedPools(t *testing.T) {
	ix := totalsIndex(t)
	s := NewState()
	s.EnsureUser("alice")

	s.ToggleOwned("alice", Item{Name: "reliat"})
	s.SetSeriesPoint("alice", "reliat", PointOf(4))
	s.SetUnusedPoint("alice", fleet.Frigate, PointOf(3))
	s.SetUnusedPoint("alice", fleet.Battleship, PointOf(7))

	got := s.Totals("alice", ix)
	if got[fleet.Frigate] != 7 {
		t.Fatalf("expected 4+3 frigate points, got %d", got[fleet.Frigate])
	}
	if got[fleet.Battleship] != 7 {
		t.Fatalf("unused pools count even with no owned items, got %d", got[fleet.Battleship])
	}
	if got[fleet.Overall] != 14 {
		t.Fatalf("expected overall 14, got %d", got[fleet.Overall])
	}
}

func TestTotalsExcludeModuleSeries(t *testing.T) {
	ix := totalsIndex(t)
	s := NewState()
	s.EnsureUser("alice")

	s.ToggleOwned("alice", Item{Name: "cv3000 corvette bay"})
	s.SetSeriesPoint("alice", "cv3000 modules", PointOf(99))

	got := s.Totals("alice", ix)
	for c, v := range got {
		if v != 0 {
			t.Fatalf("module points must not reach any total, got %s=%d", c, v)
		}
	}
}

func TestTotalsUnknownUserAllZero(t *testing.T) {
	ix := totalsIndex(t)
	s := NewState()

	got := s.Totals("ghost", ix)
	if len(got) != len(fleet.CategoryOrder()) {
		t.Fatalf("every category slot must be present, got %d", len(got))
	}
	for c, v := range got {
		if v != 0 {
			t.Fatalf("expected all zeros, got %s=%d", c, v)
		}
	}
}

func TestTotalsOverallExcludesItself(t *testing.T) {
	ix := totalsIndex(t)
	s := NewState()
	s.EnsureUser("alice")
	s.SetUnusedPoint("alice", fleet.Frigate, PointOf(5))

	first := s.Totals("alice", ix)
	second := s.Totals("alice", ix)
	if first[fleet.Overall] != 5 || second[fleet.Overall] != 5 {
		t.Fatalf("recomputation must be stable, got %d then %d",
			first[fleet.Overall], second[fleet.Overall])
	}
}
