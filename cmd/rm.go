package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	var purge bool
	rmCmd := &cobra.Command{
		Use:     "rm <model>",
		Aliases: []string{"remove"},
		Short:   "Forget a fetched model",
		Long:    "Remove a model's record. With --purge the downloaded file is deleted as well.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.manager()
			if err != nil {
				return err
			}
			if err := mgr.RemoveModel(args[0], purge); err != nil {
				return errors.Wrapf(err, "remove model '%s'", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
	rmCmd.Flags().BoolVar(&purge, "purge", false, "also delete the downloaded file")
	return rmCmd
}
