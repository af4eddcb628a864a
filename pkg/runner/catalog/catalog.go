package catalog

import (
	"context"
	"errors"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/printers"
)

// Catalog prints the projected item list, optionally marking what one
// user owns.
type Catalog struct {
	Group   fleet.Group
	Query   string
	For     string // user whose ownership to mark
	Service *app.Service
}

func (r *Catalog) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not list catalog, no service")
	}
	items := r.Service.Catalog(r.Group, r.Query)

	var ownedBy func(string) bool
	if r.For != "" {
		st := r.Service.State
		user := r.For
		ownedBy = func(name string) bool { return st.IsOwned(user, name) }
	}

	pp := printers.PrettyPrint{}
	pp.Title("Catalog")
	pp.Catalog(items, r.Service.Index, ownedBy)
	return nil
}
