package ui

import (
	"context"
	"errors"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/tui"
)

// UI launches the interactive roster screen.
type UI struct {
	Service *app.Service
}

func (r *UI) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not start ui, no service")
	}
	return tui.Run(r.Service, r.Service.PullInterval)
}
