package roster

import (
	"strings"

	"tableflip.dev/senryoku/pkg/fleet"
)

// UnregisteredType labels catalog items no user has recorded metadata for.
const UnregisteredType = "unregistered"

// Catalog projects the full canonical item list: every item of the
// master order, enriched with whichever type label any user's record
// carries for it (first seen wins, users visited in sorted order so the
// result is deterministic), defaulting to UnregisteredType. Group and
// substring filters are pure, order-preserving narrowings.
func (s *State) Catalog(ix *fleet.Index, group fleet.Group, query string) []Item {
	recorded := make(map[string]Item)
	for _, user := range s.UserNames("") {
		for _, it := range s.Owned(user) {
			key := fleet.Normalize(it.Name)
			if _, ok := recorded[key]; !ok {
				recorded[key] = Item{Name: key, Type: it.Type}
			}
		}
	}

	q := strings.TrimSpace(query)
	list := make([]Item, 0, len(ix.MasterOrder()))
	for _, name := range ix.MasterOrder() {
		it, ok := recorded[name]
		if !ok {
			it = Item{Name: name, Type: UnregisteredType}
		}
		if !group.Contains(ix.CategoryFor(name)) {
			continue
		}
		if q != "" && !strings.Contains(it.Name, q) {
			continue
		}
		list = append(list, it)
	}
	return list
}
