package cmd

import (
	"fmt"

	"github.com/grovetools/kebabify/cli"
	"github.com/grovetools/kebabify/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect kebabify configuration",
	}
	cmd.AddCommand(newConfigSchemaCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for kebabify configuration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the merged configuration for the current directory",
		Long: `Shows the configuration a run in this directory would use: the global file
(~/.config/kebabify/config.yml) merged with the nearest project file, plus defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Path != "" {
				fmt.Fprintf(out, "# Source: %s\n", cfg.Path)
			}
			text, err := config.Describe(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, text)
			return err
		},
	}
}
