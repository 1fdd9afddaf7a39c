package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <model>",
		Short: "Show details of a fetched model",
		Long:  "Display the recorded source, location and size of a fetched model.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInfo(cmd, args[0])
		},
	}
}

func (a *app) runInfo(cmd *cobra.Command, name string) error {
	mgr, err := a.manager()
	if err != nil {
		return err
	}

	m, err := mgr.GetModel(name)
	if err != nil {
		return errors.Wrapf(err, "model '%s' not found", name)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:          %s\n", m.Name)
	fmt.Fprintf(out, "Path:          %s\n", m.Path)
	fmt.Fprintf(out, "Size:          %s\n", formatSize(m.Size))
	if m.SourceURL != "" {
		fmt.Fprintf(out, "Source:        %s\n", m.SourceURL)
	}
	fmt.Fprintf(out, "Fetched:       %s\n", m.FetchedAt.Format("2006-01-02 15:04:05"))

	if _, err := os.Stat(m.Path); os.IsNotExist(err) {
		fmt.Fprintln(out, "Status:        missing on disk")
	}
	return nil
}
