package cmd

import (
	"context"
	"strings"

	"github.com/grovetools/kebabify/cli"
	"github.com/grovetools/kebabify/config"
	"github.com/grovetools/kebabify/pipeline"
	"github.com/grovetools/kebabify/version"
	"github.com/spf13/cobra"
)

// runFlags are the flags shared by the root command and watch.
type runFlags struct {
	force       bool
	dryRun      bool
	gitMove     pipeline.GitMoveMode
	skipImports bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	f.gitMove = pipeline.GitMoveAuto
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "Proceed even if tracked files have uncommitted changes")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be renamed without touching disk")
	cmd.Flags().Var(&f.gitMove, "git-move", "When to record renames with git mv:\n• auto - when every directory is inside a git repository\n• always - fail if a directory is not versioned\n• never - plain filesystem renames")
	cmd.Flags().BoolVar(&f.skipImports, "no-imports", false, "Do not rewrite import paths")
}

// options merges the loaded configuration with the flags. Flags that were
// set explicitly win.
func (f *runFlags) options(cmd *cobra.Command, cfg *config.Config, roots []string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Roots:       roots,
		Force:       f.force,
		DryRun:      f.dryRun,
		GitMove:     f.gitMove,
		SkipImports: f.skipImports,
		Ignore:      cfg.Ignore,
		Extensions:  cfg.SourceExtensions,
	}
	if !cmd.Flags().Changed("force") {
		opts.Force = cfg.Force
	}
	if !cmd.Flags().Changed("no-imports") {
		opts.SkipImports = !cfg.ShouldRewriteImports()
	}
	if !cmd.Flags().Changed("git-move") {
		mode, err := pipeline.ParseGitMoveMode(cfg.GitMove)
		if err != nil {
			return opts, err
		}
		opts.GitMove = mode
	}
	return opts, nil
}

// NewRootCmd creates the kebabify command tree.
func NewRootCmd() *cobra.Command {
	flags := &runFlags{}

	root := cli.NewStandardCommand("kebabify [directories...]", "Rename camelCase files and directories to kebab-case")
	root.Long = `Renames every camelCase file and directory below the given directories to
kebab-case and rewrites relative import paths in JavaScript and TypeScript
sources to match. Inside a git repository renames are recorded with git mv.

Examples:
  kebabify src
  kebabify src lib --dry-run
  kebabify . --git-move=never --no-imports
  # ignore uncommitted changes
  kebabify src --force`
	root.Args = cobra.MinimumNArgs(1)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		logger := cli.GetLogger(cmd)
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		logger.WithField("path", cfg.Path).Debug("Loaded configuration")
		opts, err := flags.options(cmd, cfg, args)
		if err != nil {
			return err
		}
		return runPipeline(cmd, opts)
	}
	flags.register(root)

	info := version.GetInfo()
	cli.SetVersionTemplate(root, info)
	root.AddCommand(cli.NewVersionCommand(info))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newWatchCmd())

	cli.ApplyStyledHelpRecursive(root)
	return root
}

// runPipeline runs once and prints the summary. The progress display is
// used only when stderr is a terminal and JSON output is off.
func runPipeline(cmd *cobra.Command, opts pipeline.Options) error {
	jsonOutput := cli.GetOptions(cmd).JSONOutput

	var summary *pipeline.Summary
	run := func(ctx context.Context, progress func(pipeline.Event)) error {
		opts.Progress = progress
		var err error
		summary, err = pipeline.Run(ctx, opts)
		return err
	}

	var err error
	if !jsonOutput && cli.IsInteractive(cmd.ErrOrStderr()) {
		err = cli.RunWithProgress(cmd.Context(), cmd.ErrOrStderr(), run)
	} else {
		err = run(cmd.Context(), nil)
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return cli.PrintSummaryJSON(cmd.OutOrStdout(), summary)
	}
	cli.PrintSummary(cli.PrettyLogger(cmd), summary)
	return nil
}

// Execute runs the root command with ctx and reports errors through the
// CLI error handler. It returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	verbose, _ := root.PersistentFlags().GetBool("verbose")
	if cobraUsageError(err) {
		cli.PrintError(root, err)
		return 2
	}
	handler := cli.NewErrorHandler(verbose)
	handler.Out = root.ErrOrStderr()
	_ = handler.Handle(err)
	return 1
}

func cobraUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "invalid argument", "requires at least", "accepts ", "flag needs an argument"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
