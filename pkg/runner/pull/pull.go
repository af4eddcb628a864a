package pull

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/senryoku/pkg/app"
)

// Pull fetches the authoritative snapshot and merges it into local state.
type Pull struct {
	Service *app.Service
}

func (r *Pull) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not pull, no service")
	}
	if err := r.Service.Pull(ctx); err != nil {
		return err
	}
	fmt.Printf("merged snapshot, %d users\n", len(r.Service.Users("")))
	return nil
}
