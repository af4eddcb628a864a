package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/commands/options"
	"tableflip.dev/senryoku/pkg/runner/totals"
)

func addTotals(topLevel *cobra.Command) {
	uo := &options.UserOptions{}

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show per-category strength totals for a user.",
		Example: `
senryoku totals
senryoku totals -u "Horn ARK"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			u, err := resolveUser(svc, uo.User)
			if err != nil {
				return err
			}
			r := totals.Totals{User: u, Service: svc}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddUserArg(cmd, uo)
	topLevel.AddCommand(cmd)
}
