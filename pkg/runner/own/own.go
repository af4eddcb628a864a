package own

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/roster"
)

// Toggle flips ownership of one catalog item for a user.
type Toggle struct {
	User    string
	Name    string
	Type    string
	Service *app.Service
}

func (r *Toggle) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not toggle ownership, no service")
	}
	it := roster.Item{Name: r.Name, Type: r.Type}
	if it.Type == "" {
		if e, ok := r.Service.Index.Lookup(r.Name); ok {
			it.Type = string(e.Category)
		}
	}
	owned, err := r.Service.ToggleOwned(ctx, r.User, it)
	if err != nil {
		return err
	}
	if r.Service.Outbox != nil {
		r.Service.Outbox.Drain(ctx)
	}
	if owned {
		fmt.Printf("%s now owns %q\n", r.User, r.Name)
	} else {
		fmt.Printf("%s no longer owns %q\n", r.User, r.Name)
	}
	return nil
}
