package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const maxWidth = 60
const minWidth = 40

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to the specified width, preserving existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			result = append(result, paragraph)
			continue
		}

		var line string
		for _, word := range strings.Fields(paragraph) {
			if line == "" {
				line = word
			} else if len(line)+1+len(word) <= width {
				line += " " + word
			} else {
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

type helpStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	muted   lipgloss.Style
	italic  lipgloss.Style
	errText lipgloss.Style
}

// newHelpStyles builds styles for w. Output that is not a terminal, or a
// command run with --no-color, gets plain text.
func newHelpStyles(cmd *cobra.Command, w io.Writer) helpStyles {
	r := lipgloss.NewRenderer(w)
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return helpStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		section: r.NewStyle().Italic(true).Foreground(lipgloss.Color("208")),
		command: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		flag:    r.NewStyle().Foreground(lipgloss.Color("13")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		italic:  r.NewStyle().Italic(true),
		errText: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// SetStyledHelp applies the styled help output to a command.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

// ApplyStyledHelpRecursive applies styled help and usage to a command and all its subcommands.
// Call this after all subcommands have been added, before Execute().
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
	cmd.SetUsageFunc(styledUsageFunc)
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

// styledUsageFunc prints nothing; errors are reported by PrintError.
func styledUsageFunc(cmd *cobra.Command) error {
	return nil
}

// PrintError prints a styled error message to stderr with help hint.
func PrintError(cmd *cobra.Command, err error) {
	s := newHelpStyles(cmd, cmd.ErrOrStderr())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", s.errText.Render("Error:"), err.Error())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", s.muted.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

// parseDescription splits a command's long description into main text and examples.
func parseDescription(long string) (description string, examples string) {
	markers := []string{"\nExamples:\n", "\nExample:\n", "\nEXAMPLES:\n", "\nEXAMPLE:\n"}
	for _, marker := range markers {
		if idx := strings.Index(long, marker); idx != -1 {
			return strings.TrimSpace(long[:idx]), strings.TrimSpace(long[idx+len(marker):])
		}
	}
	return long, ""
}

// styleCommandLine applies styling to different parts of a command example.
func styleCommandLine(line, rootCmd string, s helpStyles) string {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return line
	}

	var result []string
	for i, part := range parts {
		switch {
		case i == 0 && part == rootCmd:
			result = append(result, s.command.Render(part))
		case strings.HasPrefix(part, "-"):
			result = append(result, s.flag.Render(part))
		default:
			result = append(result, part)
		}
	}
	return "  " + strings.Join(result, " ")
}

func styledHelpFunc(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	s := newHelpStyles(cmd, out)
	width := getTerminalWidth() - 2

	fmt.Fprintln(out, " "+s.title.Render(strings.ToUpper(cmd.CommandPath())))

	var description, examples string
	if cmd.Long != "" {
		description, examples = parseDescription(cmd.Long)
	} else {
		description = cmd.Short
	}

	if cmd.Short != "" {
		for _, line := range strings.Split(wrapText(cmd.Short, width), "\n") {
			fmt.Fprintln(out, " "+s.italic.Render(line))
		}
	}
	if description != "" && description != cmd.Short {
		fmt.Fprintln(out)
		for _, line := range strings.Split(wrapText(description, width), "\n") {
			fmt.Fprintln(out, " "+line)
		}
	}

	if cmd.Runnable() || cmd.HasSubCommands() {
		fmt.Fprintln(out, "\n "+s.section.Render("USAGE"))
		if cmd.Runnable() {
			fmt.Fprintf(out, " %s\n", cmd.UseLine())
		}
		if cmd.HasSubCommands() {
			fmt.Fprintf(out, " %s [command]\n", cmd.CommandPath())
		}
	}

	if cmd.HasAvailableSubCommands() {
		maxLen := 0
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() && len(sub.Name()) > maxLen {
				maxLen = len(sub.Name())
			}
		}

		fmt.Fprintln(out, "\n "+s.section.Render("COMMANDS"))
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				padding := strings.Repeat(" ", maxLen-len(sub.Name()))
				fmt.Fprintf(out, " %s%s  %s\n", s.command.Render(sub.Name()), padding, sub.Short)
			}
		}
	}

	var visibleFlags []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			visibleFlags = append(visibleFlags, f)
		}
	})

	if len(visibleFlags) > 0 {
		fmt.Fprintln(out, "\n "+s.section.Render("FLAGS"))
		maxFlagLen := 0
		for _, f := range visibleFlags {
			if l := len(formatFlagName(f)); l > maxFlagLen {
				maxFlagLen = l
			}
		}
		for _, f := range visibleFlags {
			flagStr := formatFlagName(f)
			padding := strings.Repeat(" ", maxFlagLen-len(flagStr))
			indent := strings.Repeat(" ", maxFlagLen+3)

			usage, choices := parseChoices(f.Usage)
			if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" {
				usage += s.muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
			}
			fmt.Fprintf(out, " %s%s  %s\n", s.flag.Render(flagStr), padding, usage)

			for _, choice := range choices {
				fmt.Fprintf(out, " %s  %s\n", indent, s.muted.Render("• "+choice))
			}
		}
	}

	exampleText := cmd.Example
	if exampleText == "" {
		exampleText = examples
	}
	if exampleText != "" {
		fmt.Fprintln(out, "\n "+s.section.Render("EXAMPLES"))
		rootCmd := strings.Split(cmd.CommandPath(), " ")[0]
		for _, line := range strings.Split(exampleText, "\n") {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "":
				fmt.Fprintln(out)
			case strings.HasPrefix(trimmed, "#"):
				fmt.Fprintln(out, " "+s.muted.Render(trimmed))
			default:
				fmt.Fprintln(out, " "+styleCommandLine(trimmed, rootCmd, s))
			}
		}
	}

	if cmd.HasSubCommands() {
		fmt.Fprintf(out, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

// formatFlagName returns a formatted flag string like "-f, --flag" or "--flag".
func formatFlagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	}
	return fmt.Sprintf("    --%s", f.Name)
}

// parseChoices extracts choices from a flag usage string.
// Supports two formats:
// 1. Inline: "type: x, y, z" - comma-separated choices on one line
// 2. Multi-line with descriptions:
//
//	"Description:
//	   • choice1 - Description of choice1
//	   • choice2 - Description of choice2"
//
// Returns the base description and the list of choices (with descriptions if present).
func parseChoices(usage string) (description string, choices []string) {
	// First check for multi-line bullet point format
	lines := strings.Split(usage, "\n")
	if len(lines) > 1 {
		var baseDesc string
		var bulletChoices []string

		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			// Check for bullet point lines (• or -)
			if strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "- ") {
				// Extract the choice (including description after dash if present)
				choice := strings.TrimPrefix(trimmed, "• ")
				choice = strings.TrimPrefix(choice, "- ")
				bulletChoices = append(bulletChoices, choice)
			} else if i == 0 && trimmed != "" {
				// First non-bullet line is the description
				baseDesc = trimmed
			}
		}

		if len(bulletChoices) > 0 {
			return baseDesc, bulletChoices
		}
	}

	// Fall back to inline comma-separated format
	// Look for patterns like ": x, y, z" or ": x, y, or z"
	colonIdx := strings.Index(usage, ": ")
	if colonIdx == -1 {
		return usage, nil
	}

	// Check if what follows looks like a list of choices (contains commas)
	afterColon := usage[colonIdx+2:]

	// Find where the choices end (at a parenthesis or end of string)
	endIdx := strings.Index(afterColon, " (")
	var choicesStr string
	var suffix string
	if endIdx != -1 {
		choicesStr = afterColon[:endIdx]
		suffix = afterColon[endIdx:]
	} else {
		choicesStr = afterColon
	}

	// Must have at least one comma to be considered a choice list
	if !strings.Contains(choicesStr, ", ") {
		return usage, nil
	}

	// Split by comma, handling "or" in the last item
	parts := strings.Split(choicesStr, ", ")
	if len(parts) < 3 {
		// Not enough choices to warrant splitting
		return usage, nil
	}

	// Clean up choices (handle "or x" in last item)
	for i, p := range parts {
		p = strings.TrimPrefix(p, "or ")
		parts[i] = strings.TrimSpace(p)
	}

	// Return base description (up to and including colon) + suffix
	baseDesc := usage[:colonIdx+1]
	if suffix != "" {
		baseDesc += suffix
	}

	return baseDesc, parts
}
