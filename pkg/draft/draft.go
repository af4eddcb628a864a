// Package draft stages in-progress numeric edits. A draft is the raw
// text of a field the user is still typing into; it is never committed
// state, but it always wins over committed state for display so a
// background refresh cannot clobber a half-typed number.
package draft

import (
	"strings"

	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/roster"
)

// Key addresses one editable field of one user.
type Key struct {
	User  string `json:"user"`
	Field string `json:"field"`
}

// SeriesField is the field key for a series point input.
func SeriesField(series string) string {
	return "series/" + series
}

// UnusedField is the field key for an unused point input.
func UnusedField(c fleet.Category) string {
	return "unused/" + string(c)
}

// SplitField returns the series name or unused category a field key
// addresses. Exactly one of the two booleans is true for well-formed keys.
func SplitField(field string) (series string, cls fleet.Category, isSeries bool, isUnused bool) {
	if s, ok := strings.CutPrefix(field, "series/"); ok {
		return s, "", true, false
	}
	if s, ok := strings.CutPrefix(field, "unused/"); ok {
		if c, err := fleet.ParseCategory(s); err == nil {
			return "", c, false, true
		}
	}
	return "", "", false, false
}

// Entry is a persistable draft record.
type Entry struct {
	Key
	Raw string `json:"raw"`
}

// Result is the outcome of committing a draft: either a clear of the
// committed value or a new integer value.
type Result struct {
	Clear bool
	Pt    int
}

// Store holds drafts per (user, field). It is not safe for concurrent
// use; all access happens on the single UI dispatch path.
type Store struct {
	m map[Key]string
}

// NewStore returns an empty draft store.
func NewStore() *Store {
	return &Store{m: make(map[Key]string)}
}

// Set stages the raw text verbatim, empty string included. It never
// touches committed state.
func (s *Store) Set(user, field, raw string) {
	s.m[Key{User: user, Field: field}] = raw
}

// Get returns the staged text and whether a draft exists.
func (s *Store) Get(user, field string) (string, bool) {
	raw, ok := s.m[Key{User: user, Field: field}]
	return raw, ok
}

// Delete drops the draft for a field, if any.
func (s *Store) Delete(user, field string) {
	delete(s.m, Key{User: user, Field: field})
}

// DeleteUser drops every draft belonging to the user.
func (s *Store) DeleteUser(user string) {
	for k := range s.m {
		if k.User == user {
			delete(s.m, k)
		}
	}
}

// Len reports the number of staged drafts.
func (s *Store) Len() int { return len(s.m) }

// Resolve returns what an input for the field should display: the draft
// if present, else the committed value as text, else "".
func (s *Store) Resolve(user, field string, committed roster.Point) string {
	if raw, ok := s.Get(user, field); ok {
		return raw
	}
	return committed.String()
}

// Commit finalizes the draft for a field. If no draft was ever staged
// the commit is a no-op and the second return is false. A draft that
// trims to empty is a clear of the committed value, not a zero; any
// other text is clamped to a non-negative integer. The draft entry is
// removed either way.
func (s *Store) Commit(user, field string) (Result, bool) {
	key := Key{User: user, Field: field}
	raw, ok := s.m[key]
	if !ok {
		return Result{}, false
	}
	delete(s.m, key)
	if strings.TrimSpace(raw) == "" {
		return Result{Clear: true}, true
	}
	return Result{Pt: Clamp(raw)}, true
}

// Entries returns the staged drafts for persistence, order unspecified.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.m))
	for k, raw := range s.m {
		out = append(out, Entry{Key: k, Raw: raw})
	}
	return out
}

// Restore reloads persisted drafts, replacing current contents.
func (s *Store) Restore(entries []Entry) {
	s.m = make(map[Key]string, len(entries))
	for _, e := range entries {
		if e.User == "" || e.Field == "" {
			continue
		}
		s.m[e.Key] = e.Raw
	}
}
