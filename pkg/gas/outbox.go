package gas

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/senryoku/pkg/fleet"
)

// Action names a relay operation carried by an outbox command.
type Action string

const (
	ActionCreateUser     Action = "createUser"
	ActionDeleteUser     Action = "deleteUser"
	ActionUpsertOwn      Action = "upsertOwn"
	ActionUpsertPt       Action = "upsertPt"
	ActionUpsertUnusedPt Action = "upsertUnusedPt"
)

// Command is one outbound write. Pt nil means the explicit clear marker.
type Command struct {
	Action Action
	User   string
	Ship   string
	Series string
	Cls    fleet.Category
	Own    bool
	Pt     *int
}

// Outbox is the one-way outbound queue between synchronous local state
// transitions and the network. Delivery is at most once: a failed or
// dropped command is logged and forgotten, and the next periodic pull
// reconciles any divergence.
type Outbox struct {
	sender Sender
	ch     chan Command
}

// NewOutbox returns an outbox over the sender with the given queue depth.
func NewOutbox(sender Sender, depth int) *Outbox {
	if depth <= 0 {
		depth = 64
	}
	return &Outbox{sender: sender, ch: make(chan Command, depth)}
}

// Enqueue queues a command without blocking. When the queue is full the
// command is dropped and logged, preserving UI liveness over delivery.
func (o *Outbox) Enqueue(cmd Command) {
	select {
	case o.ch <- cmd:
	default:
		fmt.Fprintf(os.Stderr, "gas: outbox full, dropped %s for %q\n", cmd.Action, cmd.User)
	}
}

// Run consumes commands until ctx is done. Failures are logged and
// never propagated; local state already reflects the user's intent.
func (o *Outbox) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-o.ch:
			if err := o.dispatch(ctx, cmd); err != nil {
				fmt.Fprintf(os.Stderr, "gas: sync %s for %q: %v\n", cmd.Action, cmd.User, err)
			}
		}
	}
}

// Drain sends everything currently queued, for one-shot CLI runs that
// exit right after a mutation.
func (o *Outbox) Drain(ctx context.Context) {
	for {
		select {
		case cmd := <-o.ch:
			if err := o.dispatch(ctx, cmd); err != nil {
				fmt.Fprintf(os.Stderr, "gas: sync %s for %q: %v\n", cmd.Action, cmd.User, err)
			}
		default:
			return
		}
	}
}

func (o *Outbox) dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Action {
	case ActionCreateUser:
		return o.sender.CreateUser(ctx, cmd.User)
	case ActionDeleteUser:
		return o.sender.DeleteUser(ctx, cmd.User)
	case ActionUpsertOwn:
		return o.sender.UpsertOwn(ctx, cmd.User, cmd.Ship, cmd.Own)
	case ActionUpsertPt:
		return o.sender.UpsertPt(ctx, cmd.User, cmd.Series, cmd.Pt)
	case ActionUpsertUnusedPt:
		return o.sender.UpsertUnusedPt(ctx, cmd.User, cmd.Cls, cmd.Pt)
	}
	return fmt.Errorf("gas: unknown outbox action %q", cmd.Action)
}
