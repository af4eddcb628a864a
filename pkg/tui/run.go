package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/senryoku/pkg/app"
)

// Run launches the interactive UI. The outbox worker runs for the
// lifetime of the program so commits never block on the network.
func Run(svc *app.Service, pullEvery time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if svc.Outbox != nil {
		go svc.Outbox.Run(ctx)
	}

	// A failed watch degrades to no live reload, nothing worse.
	events, err := svc.Persistence.Watch(ctx)
	if err != nil {
		events = nil
	}

	p := tea.NewProgram(New(svc, pullEvery, events), tea.WithAltScreen())
	_, err = p.Run()

	// Flush writes queued by the last few keystrokes before exiting.
	if svc.Outbox != nil {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		svc.Outbox.Drain(flushCtx)
	}
	return err
}
