package roster

import (
	"fmt"
	"strings"

	"tableflip.dev/senryoku/pkg/fleet"
)

// Snapshot is the full authoritative payload pulled from the remote
// store. It is a replacement candidate, not a diff. A nil map means the
// backend omitted that section entirely and it is left untouched.
type Snapshot struct {
	Users        map[string][]Item         `json:"users"`
	SeriesPoints map[string]map[string]int `json:"seriesPointsByUser"`
	UnusedPoints map[string]map[string]int `json:"unusedPointsByUser"`
}

// MergePolicy selects how ownership sets are reconciled.
type MergePolicy string

const (
	// PolicyGuarded rejects a snapshot in which every user has empty
	// ownership, leaving local ownership untouched. Such a snapshot is
	// far more likely an incomplete backend response than a genuine
	// everyone-sold-everything state, and accepting it zeroes every
	// total until the next good pull.
	PolicyGuarded MergePolicy = "guarded"

	// PolicyStrict always trusts the snapshot, ownership included.
	PolicyStrict MergePolicy = "strict"
)

// ParseMergePolicy converts a string to a MergePolicy. Empty input
// means PolicyGuarded.
func ParseMergePolicy(raw string) (MergePolicy, error) {
	p := MergePolicy(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case "":
		return PolicyGuarded, nil
	case PolicyGuarded, PolicyStrict:
		return p, nil
	}
	return PolicyGuarded, fmt.Errorf("roster: unknown merge policy %q", raw)
}

// Merge reconciles a snapshot into the state.
//
// Point maps are a full replace: absence in the snapshot becomes
// absence locally, because once an export succeeds the remote store is
// the source of truth for entered-vs-not. Ownership follows the policy.
// Drafts are not part of State and are never touched here. Merge is
// idempotent: applying the same snapshot twice equals applying it once.
func (s *State) Merge(snap Snapshot, policy MergePolicy) {
	s.normalized()

	if snap.Users != nil && (policy == PolicyStrict || hasAnyOwned(snap.Users)) {
		users := make(map[string][]Item, len(snap.Users))
		for name, list := range snap.Users {
			n := strings.TrimSpace(name)
			if n == "" {
				continue
			}
			users[n] = dedupe(list)
		}
		s.Users = users
	}

	if snap.SeriesPoints != nil {
		pts := make(map[string]map[string]Point, len(snap.SeriesPoints))
		for name, m := range snap.SeriesPoints {
			n := strings.TrimSpace(name)
			if n == "" {
				continue
			}
			um := make(map[string]Point, len(m))
			for series, v := range m {
				um[series] = PointOf(v)
			}
			pts[n] = um
		}
		s.SeriesPoints = pts
	}

	if snap.UnusedPoints != nil {
		pts := make(map[string]map[fleet.Category]Point, len(snap.UnusedPoints))
		for name, m := range snap.UnusedPoints {
			n := strings.TrimSpace(name)
			if n == "" {
				continue
			}
			um := make(map[fleet.Category]Point, len(m))
			for cls, v := range m {
				c, err := fleet.ParseCategory(cls)
				if err != nil {
					continue
				}
				um[c] = PointOf(v)
			}
			pts[n] = um
		}
		s.UnusedPoints = pts
	}

	// Users known only through point maps still get their triple.
	for name := range s.SeriesPoints {
		s.EnsureUser(name)
	}
	for name := range s.UnusedPoints {
		s.EnsureUser(name)
	}
}

func hasAnyOwned(users map[string][]Item) bool {
	for _, list := range users {
		if len(list) > 0 {
			return true
		}
	}
	return false
}

func dedupe(list []Item) []Item {
	out := make([]Item, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, it := range list {
		key := fleet.Normalize(it.Name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Item{Name: key, Type: it.Type})
	}
	return out
}
