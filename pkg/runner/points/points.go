package points

import (
	"context"
	"errors"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/draft"
	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/printers"
)

// Set stages and commits one point field in a single step, going
// through the same draft/commit path the interactive UI uses. An empty
// Raw (or Clear) clears the committed value to absent, not zero.
type Set struct {
	User    string
	Series  string         // series field when non-empty
	Cls     fleet.Category // unused-point field when non-empty
	Raw     string
	Clear   bool
	Service *app.Service
}

func (r *Set) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not set points, no service")
	}
	if !r.Service.State.HasUser(r.User) {
		return errors.New("unknown user " + r.User)
	}

	var field string
	switch {
	case r.Series != "":
		field = draft.SeriesField(r.Series)
	case r.Cls != "":
		field = draft.UnusedField(r.Cls)
	default:
		return errors.New("need a series or a category")
	}

	raw := r.Raw
	if r.Clear {
		raw = ""
	}
	if err := r.Service.SetDraft(ctx, r.User, field, raw); err != nil {
		return err
	}
	if err := r.Service.Commit(ctx, r.User, field); err != nil {
		return err
	}
	if r.Service.Outbox != nil {
		r.Service.Outbox.Drain(ctx)
	}
	return nil
}

// Show prints a user's committed series and unused point entries.
type Show struct {
	User    string
	Service *app.Service
}

func (r *Show) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not show points, no service")
	}
	if !r.Service.State.HasUser(r.User) {
		return errors.New("unknown user " + r.User)
	}
	pp := printers.PrettyPrint{}
	pp.Title(r.User + " series points")
	pp.SeriesPoints(r.Service.State, r.User, r.Service.Index)
	pp.Title(r.User + " unused points")
	pp.UnusedPoints(r.Service.State, r.User)
	return nil
}
