package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "senryoku",
		Short: base.Wrap80("Fleet strength roster: track ship ownership and point allocations, synced with the squadron spreadsheet."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addUser(topLevel)
	addOwn(topLevel)
	addPoints(topLevel)
	addTotals(topLevel)
	addCatalog(topLevel)
	addPull(topLevel)
	addVersion(topLevel)
}
