package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/commands/options"
	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/runner/catalog"
)

func addCatalog(topLevel *cobra.Command) {
	co := &options.CatalogOptions{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog items across all users.",
		Example: `
senryoku catalog
senryoku catalog -g large -q kirov
senryoku catalog --for "Horn ARK"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			g := fleet.GroupAll
			if co.Group != "" {
				var err error
				g, err = fleet.ParseGroup(co.Group)
				if err != nil {
					return err
				}
			}
			r := catalog.Catalog{
				Group:   g,
				Query:   co.Query,
				For:     co.For,
				Service: svc,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddCatalogArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
