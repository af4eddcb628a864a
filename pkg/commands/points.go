package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/commands/options"
	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/runner/points"
)

func addPoints(topLevel *cobra.Command) {
	uo := &options.UserOptions{}
	po := &options.PointsOptions{}

	cmd := &cobra.Command{
		Use:   "points",
		Short: "Read and write point allocations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	set := &cobra.Command{
		Use:   "set [value]",
		Short: "Set a series or unused-point value.",
		Example: `
senryoku points set -s reliat 12
senryoku points set -c frigate 3
senryoku points set -s reliat --clear
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if po.Series == "" && po.Cls == "" {
				return errors.New("requires --series or --category")
			}
			if po.Series != "" && po.Cls != "" {
				return errors.New("--series and --category are exclusive")
			}
			if len(args) == 0 && !po.Clear {
				return errors.New("requires a value or --clear")
			}

			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			u, err := resolveUser(svc, uo.User)
			if err != nil {
				return err
			}

			var cls fleet.Category
			if po.Cls != "" {
				cls, err = fleet.ParseCategory(po.Cls)
				if err != nil {
					return err
				}
			}

			r := points.Set{
				User:    u,
				Series:  po.Series,
				Cls:     cls,
				Raw:     strings.Join(args, " "),
				Clear:   po.Clear,
				Service: svc,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}
	options.AddUserArg(set, uo)
	options.AddPointsArgs(set, po)

	suo := &options.UserOptions{}
	show := &cobra.Command{
		Use:   "show",
		Short: "Show committed point entries for a user.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			u, err := resolveUser(svc, suo.User)
			if err != nil {
				return err
			}
			r := points.Show{User: u, Service: svc}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}
	options.AddUserArg(show, suo)

	cmd.AddCommand(set, show)
	topLevel.AddCommand(cmd)
}
