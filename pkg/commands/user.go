package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/senryoku/pkg/app"
	"tableflip.dev/senryoku/pkg/runner/user"
)

func addUser(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage roster users.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a user and select it.",
		Example: `
senryoku user create "Horn ARK"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			r := user.Create{Name: strings.Join(args, " "), Service: svc}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a user and everything recorded for them.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			r := user.Delete{Name: strings.Join(args, " "), Service: svc}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	sel := &cobra.Command{
		Use:   "select <name>",
		Short: "Select the active user.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			r := user.Select{Name: strings.Join(args, " "), Service: svc}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	list := &cobra.Command{
		Use:   "list [query]",
		Short: "List users, optionally filtered by substring.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Boot(cmd.Context())
			if err != nil {
				return err
			}
			r := user.List{Query: strings.Join(args, " "), Service: svc}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.AddCommand(create, del, sel, list)
	topLevel.AddCommand(cmd)
}

// resolveUser picks the flagged user or falls back to the selection.
func resolveUser(svc *app.Service, flagged string) (string, error) {
	if flagged != "" {
		return flagged, nil
	}
	if svc.Session.SelectedUser != "" {
		return svc.Session.SelectedUser, nil
	}
	return "", errors.New("no user given and none selected")
}
