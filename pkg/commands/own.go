package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/commands/options"
	"tableflip.dev/senryoku/pkg/runner/own"
)

func addOwn(topLevel *cobra.Command) {
	uo := &options.UserOptions{}
	typ := ""

	cmd := &cobra.Command{
		Use:   "own <item name>",
		Short: "Toggle ownership of a catalog item.",
		Example: `
senryoku own reliat
senryoku own -u "Horn ARK" "vitas a021"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			u, err := resolveUser(svc, uo.User)
			if err != nil {
				return err
			}
			r := own.Toggle{
				User:    u,
				Name:    strings.Join(args, " "),
				Type:    typ,
				Service: svc,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddUserArg(cmd, uo)
	cmd.Flags().StringVarP(&typ, "type", "t", "",
		"Type label recorded with the item. Defaults to its catalog category.")

	topLevel.AddCommand(cmd)
}
