package totals

import (
	"context"
	"errors"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/printers"
)

// Totals prints the per-category totals for a user.
type Totals struct {
	User    string
	Service *app.Service
}

func (r *Totals) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not compute totals, no service")
	}
	pp := printers.PrettyPrint{}
	pp.Title(r.User)
	pp.Totals(r.Service.Totals(r.User))
	return nil
}
