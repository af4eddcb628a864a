package user

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/printers"
)

// Create adds a user and selects it. The upstream write is gating: if
// the spreadsheet cannot take the name the error is surfaced.
type Create struct {
	Name    string
	Service *app.Service
}

func (r *Create) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not create user, no service")
	}
	n, err := r.Service.CreateUser(ctx, r.Name)
	if err != nil {
		return err
	}
	fmt.Printf("created %q\n", n)
	return nil
}

// Delete removes a user and everything recorded for them.
type Delete struct {
	Name    string
	Service *app.Service
}

func (r *Delete) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not delete user, no service")
	}
	if err := r.Service.DeleteUser(ctx, r.Name); err != nil {
		return err
	}
	if r.Service.Outbox != nil {
		r.Service.Outbox.Drain(ctx)
	}
	fmt.Printf("deleted %q\n", r.Name)
	return nil
}

// List prints user names, optionally narrowed by substring query.
type List struct {
	Query   string
	Service *app.Service
}

func (r *List) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not list users, no service")
	}
	pp := printers.PrettyPrint{}
	pp.Title("Users")
	pp.Users(r.Service.Users(r.Query), r.Service.Session.SelectedUser)
	return nil
}

// Select records the active user for subsequent commands.
type Select struct {
	Name    string
	Service *app.Service
}

func (r *Select) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not select user, no service")
	}
	if err := r.Service.Select(ctx, r.Name); err != nil {
		return err
	}
	fmt.Printf("selected %q\n", r.Name)
	return nil
}
