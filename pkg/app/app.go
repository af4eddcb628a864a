// Package app provides the high-level operations shared by the CLI and
// the TUI. Service wires the persistent cache, the classification
// index, the draft store, and the remote relay together; committed
// state is mutated only here (on commit) and by the merge (on pull).
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/senryoku/pkg/draft"
	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/gas"
	"tableflip.dev/senryoku/pkg/roster"
	"tableflip.dev/senryoku/pkg/store"
)

// Service exposes roster operations over injected collaborators.
type Service struct {
	Persistence store.Persistence
	Index       *fleet.Index
	Remote      gas.Sender // nil when no endpoint is configured
	Outbox      *gas.Outbox
	Policy      roster.MergePolicy

	// PullInterval is the periodic pull cadence for interactive runs.
	PullInterval time.Duration

	State   *roster.State
	Drafts  *draft.Store
	Session *store.Session
}

// New assembles a Service. Remote may be nil; every write then stays local.
func New(p store.Persistence, ix *fleet.Index, remote gas.Sender, policy roster.MergePolicy) *Service {
	svc := &Service{
		Persistence: p,
		Index:       ix,
		Remote:      remote,
		Policy:      policy,
		State:       roster.NewState(),
		Drafts:      draft.NewStore(),
		Session:     &store.Session{},
	}
	if remote != nil {
		svc.Outbox = gas.NewOutbox(remote, 0)
	}
	return svc
}

// Load reloads committed state, session, and staged drafts from the cache.
func (s *Service) Load(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	s.State = s.Persistence.LoadState(ctx)
	s.Session = s.Persistence.LoadSession(ctx)
	s.Drafts.Restore(s.Session.Drafts)
	return nil
}

func (s *Service) saveState(ctx context.Context) error {
	if s.Persistence == nil {
		return nil
	}
	return s.Persistence.SaveState(ctx, s.State)
}

// SaveSession snapshots the session, drafts included, into the cache.
func (s *Service) SaveSession(ctx context.Context) error {
	if s.Persistence == nil {
		return nil
	}
	s.Session.Drafts = s.Drafts.Entries()
	return s.Persistence.SaveSession(ctx, s.Session)
}

func (s *Service) enqueue(cmd gas.Command) {
	if s.Outbox == nil {
		return
	}
	s.Outbox.Enqueue(cmd)
}

// CreateUser creates the user locally, then remotely. The remote write
// is the one whose failure is surfaced: the spreadsheet's name column
// can fill up, and silently hiding that would strand the new user
// locally. On success the user becomes the selection.
func (s *Service) CreateUser(ctx context.Context, name string) (string, error) {
	n, _ := s.State.EnsureUser(name)
	if n == "" {
		return "", errors.New("app: user name required")
	}
	if err := s.saveState(ctx); err != nil {
		return n, err
	}
	if s.Remote != nil {
		if err := s.Remote.CreateUser(ctx, n); err != nil {
			return n, fmt.Errorf("app: create user %q upstream: %w", n, err)
		}
	}
	s.Session.SelectedUser = n
	if err := s.SaveSession(ctx); err != nil {
		return n, err
	}
	return n, nil
}

// DeleteUser removes the user's three sub-records atomically, drops the
// user's drafts, clears a selection pointing at them, and queues the
// remote delete.
func (s *Service) DeleteUser(ctx context.Context, name string) error {
	if !s.State.DeleteUser(name) {
		return fmt.Errorf("app: unknown user %q", name)
	}
	s.Drafts.DeleteUser(name)
	if s.Session.SelectedUser == name {
		s.Session.SelectedUser = ""
	}
	if err := s.saveState(ctx); err != nil {
		return err
	}
	if err := s.SaveSession(ctx); err != nil {
		return err
	}
	s.enqueue(gas.Command{Action: gas.ActionDeleteUser, User: name})
	return nil
}

// Select records the active user.
func (s *Service) Select(ctx context.Context, name string) error {
	if name != "" && !s.State.HasUser(name) {
		return fmt.Errorf("app: unknown user %q", name)
	}
	s.Session.SelectedUser = name
	return s.SaveSession(ctx)
}

// ToggleOwned flips ownership locally and queues the remote upsert.
func (s *Service) ToggleOwned(ctx context.Context, user string, it roster.Item) (bool, error) {
	if !s.State.HasUser(user) {
		return false, fmt.Errorf("app: unknown user %q", user)
	}
	owned := s.State.ToggleOwned(user, it)
	if err := s.saveState(ctx); err != nil {
		return owned, err
	}
	s.enqueue(gas.Command{Action: gas.ActionUpsertOwn, User: user, Ship: it.Name, Own: owned})
	return owned, nil
}

// SetDraft stages raw field text. Drafts are persisted with the session
// so an accidental restart does not lose a half-typed edit.
func (s *Service) SetDraft(ctx context.Context, user, field, raw string) error {
	s.Drafts.Set(user, field, raw)
	return s.SaveSession(ctx)
}

// Display resolves what an input for the field should show: draft
// first, else the committed value, else empty.
func (s *Service) Display(user, field string) string {
	return s.Drafts.Resolve(user, field, s.committed(user, field))
}

func (s *Service) committed(user, field string) roster.Point {
	series, cls, isSeries, isUnused := draft.SplitField(field)
	switch {
	case isSeries:
		return s.State.SeriesPoint(user, series)
	case isUnused:
		return s.State.UnusedPoint(user, cls)
	}
	return roster.Unset()
}

// Commit finalizes the draft for one field: committed state updates
// synchronously, the remote upsert (value, or explicit clear marker)
// goes through the outbox. Committing a field that was never drafted is
// a no-op.
func (s *Service) Commit(ctx context.Context, user, field string) error {
	// Resolve the field first so a malformed key fails before the draft
	// is consumed.
	series, cls, isSeries, isUnused := draft.SplitField(field)
	if !isSeries && !isUnused {
		return fmt.Errorf("app: unknown field %q", field)
	}

	res, ok := s.Drafts.Commit(user, field)
	if !ok {
		return nil
	}

	var p roster.Point
	var pt *int
	if !res.Clear {
		p = roster.PointOf(res.Pt)
		v := res.Pt
		pt = &v
	}

	if isSeries {
		s.State.SetSeriesPoint(user, series, p)
		s.enqueue(gas.Command{Action: gas.ActionUpsertPt, User: user, Series: series, Pt: pt})
	} else {
		s.State.SetUnusedPoint(user, cls, p)
		s.enqueue(gas.Command{Action: gas.ActionUpsertUnusedPt, User: user, Cls: cls, Pt: pt})
	}

	if err := s.saveState(ctx); err != nil {
		return err
	}
	return s.SaveSession(ctx)
}

// Totals computes the per-category totals for a user.
func (s *Service) Totals(user string) map[fleet.Category]int {
	return s.State.Totals(user, s.Index)
}

// Catalog projects the canonical item list under the given filters.
func (s *Service) Catalog(group fleet.Group, query string) []roster.Item {
	return s.State.Catalog(s.Index, group, query)
}

// Users lists user names, narrowed by substring query.
func (s *Service) Users(query string) []string {
	return s.State.UserNames(query)
}

// Pull fetches a fresh snapshot and merges it. On transport failure the
// previous local state is retained unchanged; there is no partial merge.
func (s *Service) Pull(ctx context.Context) error {
	if s.Remote == nil {
		return gas.ErrNoEndpoint
	}
	snap, err := s.Remote.Export(ctx)
	if err != nil {
		return fmt.Errorf("app: pull: %w", err)
	}
	s.State.Merge(snap, s.Policy)
	return s.saveState(ctx)
}

// Boot loads configuration and assembles a ready Service. An empty
// endpoint is reported once here and leaves the service local-only.
func Boot(ctx context.Context) (*Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}

	ix := fleet.DefaultIndex()
	if cfg.CatalogPath != "" {
		doc, err := fleet.LoadDocument(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		if ix, err = fleet.NewIndex(doc); err != nil {
			return nil, err
		}
	}

	policy, err := roster.ParseMergePolicy(cfg.MergePolicy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "app: %v, using %q\n", err, policy)
	}

	var remote gas.Sender
	if cfg.Endpoint != "" {
		remote = gas.NewClient(cfg.Endpoint)
	} else {
		fmt.Fprintln(os.Stderr, "app: no relay endpoint configured, changes stay local")
	}

	svc := New(p, ix, remote, policy)
	svc.PullInterval = cfg.PullInterval
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
