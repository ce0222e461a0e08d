package cli

import (
	"os"

	"github.com/grovetools/kebabify/config"
	"github.com/grovetools/kebabify/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds the persistent options shared by every command
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
	NoColor    bool
}

// NewStandardCommand creates a new command with the standard flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a .kebabify.yml or kebabify.toml file")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the CLI logger, raised to debug level by --verbose.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	logger := logging.NewLogger("cli")
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logging.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
		NoColor:    noColor,
	}
}

// LoadConfig loads the file named by --config, or the nearest project file
// above the working directory. No file yields defaults.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := GetOptions(cmd)
	if opts.ConfigFile != "" {
		return config.Load(opts.ConfigFile)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadFrom(cwd)
}

// PrettyLogger returns a PrettyLogger on the command's output stream that
// honors --no-color.
func PrettyLogger(cmd *cobra.Command) *logging.PrettyLogger {
	p := logging.NewPrettyLoggerTo(cmd.OutOrStdout())
	if GetOptions(cmd).NoColor {
		p.NoColor()
	}
	return p
}
