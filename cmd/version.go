package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/heihealth-cli/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hh version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hh %s\n", version.Version)
			return err
		},
	}
}
