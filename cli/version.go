package cli

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/kebabify/version"
	"github.com/spf13/cobra"
)

// SetVersionTemplate makes `--version` print the same block as the version command.
func SetVersionTemplate(cmd *cobra.Command, info version.Info) {
	cmd.Version = info.Version
	cmd.SetVersionTemplate(info.String())
}

// NewVersionCommand creates the version command. It honours the --json flag
// of the root command.
func NewVersionCommand(info version.Info) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of kebabify",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if GetOptions(cmd).JSONOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), info.String())
			return err
		},
	}
}
