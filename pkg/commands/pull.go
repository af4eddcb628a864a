package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/runner/pull"
)

func addPull(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch the spreadsheet snapshot and merge it into local state.",
		Example: `
senryoku pull
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			r := pull.Pull{Service: svc}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
