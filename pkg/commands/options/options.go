package options

import (
	"github.com/spf13/cobra"
)

// UserOptions carries the target user for a command.
type UserOptions struct {
	User string
}

func AddUserArg(cmd *cobra.Command, uo *UserOptions) {
	cmd.Flags().StringVarP(&uo.User, "user", "u", "",
		"User the command applies to. Defaults to the current selection.")
}

// PointsOptions selects which point field a command writes.
type PointsOptions struct {
	Series string
	Cls    string
	Clear  bool
}

func AddPointsArgs(cmd *cobra.Command, po *PointsOptions) {
	cmd.Flags().StringVarP(&po.Series, "series", "s", "",
		"Series the points apply to.")
	cmd.Flags().StringVarP(&po.Cls, "category", "c", "",
		"Unused-point category the points apply to.")
	cmd.Flags().BoolVar(&po.Clear, "clear", false,
		"Clear the entry instead of setting it (absent, not zero).")
}

// CatalogOptions carries catalog filters.
type CatalogOptions struct {
	Group string
	Query string
	For   string
}

func AddCatalogArgs(cmd *cobra.Command, co *CatalogOptions) {
	cmd.Flags().StringVarP(&co.Group, "group", "g", "",
		"Filter group: all, small, large, aircraft, modules.")
	cmd.Flags().StringVarP(&co.Query, "query", "q", "",
		"Substring filter on item names.")
	cmd.Flags().StringVar(&co.For, "for", "",
		"Mark items owned by this user.")
}
