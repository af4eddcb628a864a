// Package roster holds the committed client-side state: per-user
// ownership sets and point maps, the reconciliation merge, and the
// aggregation over them. State is an explicit value threaded through
// operations; persistence and remote sync are collaborators, not
// ambient globals.
package roster

import (
	"sort"
	"strings"

	"tableflip.dev/senryoku/pkg/fleet"
)

// Item is one owned catalog entry as recorded for a user: the
// normalized name plus whatever free-form type label the record carried.
type Item struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// State is the committed local view: for each user an ownership set, a
// series point map, and an unused point map. The three sub-records are
// created and deleted together.
type State struct {
	Users        map[string][]Item                   `json:"users"`
	SeriesPoints map[string]map[string]Point         `json:"seriesPointsByUser"`
	UnusedPoints map[string]map[fleet.Category]Point `json:"unusedPointsByUser"`
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		Users:        make(map[string][]Item),
		SeriesPoints: make(map[string]map[string]Point),
		UnusedPoints: make(map[string]map[fleet.Category]Point),
	}
}

// normalized guards against maps lost to JSON round-trips of partial docs.
func (s *State) normalized() {
	if s.Users == nil {
		s.Users = make(map[string][]Item)
	}
	if s.SeriesPoints == nil {
		s.SeriesPoints = make(map[string]map[string]Point)
	}
	if s.UnusedPoints == nil {
		s.UnusedPoints = make(map[string]map[fleet.Category]Point)
	}
}

// EnsureUser creates the three sub-records for a user if absent.
// The name is trimmed; empty names are rejected. Creating an existing
// user is a no-op. Returns the canonical name and whether it was created.
func (s *State) EnsureUser(name string) (string, bool) {
	s.normalized()
	n := strings.TrimSpace(name)
	if n == "" {
		return "", false
	}
	if _, ok := s.Users[n]; ok {
		return n, false
	}
	s.Users[n] = []Item{}
	if s.SeriesPoints[n] == nil {
		s.SeriesPoints[n] = make(map[string]Point)
	}
	if s.UnusedPoints[n] == nil {
		s.UnusedPoints[n] = make(map[fleet.Category]Point)
	}
	return n, true
}

// DeleteUser removes all three sub-records atomically. Reports whether
// the user existed.
func (s *State) DeleteUser(name string) bool {
	s.normalized()
	n := strings.TrimSpace(name)
	_, ok := s.Users[n]
	delete(s.Users, n)
	delete(s.SeriesPoints, n)
	delete(s.UnusedPoints, n)
	return ok
}

// HasUser reports whether the user exists.
func (s *State) HasUser(name string) bool {
	s.normalized()
	_, ok := s.Users[strings.TrimSpace(name)]
	return ok
}

// UserNames returns user names sorted, narrowed by substring query.
func (s *State) UserNames(query string) []string {
	s.normalized()
	q := strings.TrimSpace(query)
	names := make([]string, 0, len(s.Users))
	for n := range s.Users {
		if q == "" || strings.Contains(n, q) {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Owned returns the recorded ownership list for a user.
func (s *State) Owned(user string) []Item {
	s.normalized()
	return s.Users[user]
}

// IsOwned reports membership by normalized name.
func (s *State) IsOwned(user, name string) bool {
	key := fleet.Normalize(name)
	for _, it := range s.Owned(user) {
		if fleet.Normalize(it.Name) == key {
			return true
		}
	}
	return false
}

// ToggleOwned flips ownership of an item for a user and reports the new
// membership. Names collapse under normalization, so toggling a
// differently-cased spelling removes the existing entry.
func (s *State) ToggleOwned(user string, it Item) bool {
	s.normalized()
	key := fleet.Normalize(it.Name)
	list := s.Users[user]
	next := make([]Item, 0, len(list)+1)
	found := false
	for _, have := range list {
		if fleet.Normalize(have.Name) == key {
			found = true
			continue
		}
		next = append(next, have)
	}
	if !found {
		next = append(next, Item{Name: key, Type: it.Type})
	}
	s.Users[user] = next
	return !found
}

// SetSeriesPoint sets or clears (unset Point) a series point entry.
// Clearing removes the map key so absence stays representable.
func (s *State) SetSeriesPoint(user, series string, p Point) {
	s.normalized()
	m := s.SeriesPoints[user]
	if m == nil {
		m = make(map[string]Point)
		s.SeriesPoints[user] = m
	}
	if !p.Set() {
		delete(m, series)
		return
	}
	m[series] = p
}

// SeriesPoint returns the committed series point entry, unset if absent.
func (s *State) SeriesPoint(user, series string) Point {
	s.normalized()
	if p, ok := s.SeriesPoints[user][series]; ok {
		return p
	}
	return Unset()
}

// SetUnusedPoint sets or clears an unused point entry for a category.
func (s *State) SetUnusedPoint(user string, c fleet.Category, p Point) {
	s.normalized()
	m := s.UnusedPoints[user]
	if m == nil {
		m = make(map[fleet.Category]Point)
		s.UnusedPoints[user] = m
	}
	if !p.Set() {
		delete(m, c)
		return
	}
	m[c] = p
}

// UnusedPoint returns the committed unused point entry, unset if absent.
func (s *State) UnusedPoint(user string, c fleet.Category) Point {
	s.normalized()
	if p, ok := s.UnusedPoints[user][c]; ok {
		return p
	}
	return Unset()
}
