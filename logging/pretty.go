package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// PrettyLogger provides pretty formatted console output
type PrettyLogger struct {
	writer   io.Writer
	renderer *lipgloss.Renderer
	styles   PrettyStyles
}

// PrettyStyles contains lipgloss styles for different log types
type PrettyStyles struct {
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Path    lipgloss.Style
	Arrow   lipgloss.Style
}

// DefaultPrettyStyles returns the default styling for pretty logs
func DefaultPrettyStyles(r *lipgloss.Renderer) PrettyStyles {
	return PrettyStyles{
		Success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // Green
		Info:    r.NewStyle().Foreground(lipgloss.Color("12")),            // Blue
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),            // Yellow
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),  // Red
		Key:     r.NewStyle().Foreground(lipgloss.Color("8")),             // Gray
		Value:   r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true), // Cyan
		Path:    r.NewStyle().Foreground(lipgloss.Color("6")),             // Dark cyan
		Arrow:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// NewPrettyLoggerTo creates a pretty logger whose color profile is detected
// from w. NO_COLOR disables styling.
func NewPrettyLoggerTo(w io.Writer) *PrettyLogger {
	r := lipgloss.NewRenderer(w)
	if os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	}
	return &PrettyLogger{writer: w, renderer: r, styles: DefaultPrettyStyles(r)}
}

// NoColor strips all styling from the output
func (p *PrettyLogger) NoColor() *PrettyLogger {
	p.renderer.SetColorProfile(termenv.Ascii)
	p.styles = DefaultPrettyStyles(p.renderer)
	return p
}

// Writer returns the destination of the output
func (p *PrettyLogger) Writer() io.Writer {
	return p.writer
}

// Success logs a success message with a checkmark
func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.styles.Success.Render("✓"),
		p.styles.Success.Render(message))
}

// InfoPretty logs an info message with pretty formatting
func (p *PrettyLogger) InfoPretty(message string) {
	fmt.Fprintf(p.writer, "%s\n", p.styles.Info.Render(message))
}

// WarnPretty logs a warning with pretty formatting
func (p *PrettyLogger) WarnPretty(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.styles.Warning.Render("⚠"),
		p.styles.Warning.Render(message))
}

// ErrorPretty logs an error with pretty formatting
func (p *PrettyLogger) ErrorPretty(message string, err error) {
	fmt.Fprintf(p.writer, "%s %s",
		p.styles.Error.Render("✗"),
		p.styles.Error.Render(message))
	if err != nil {
		fmt.Fprintf(p.writer, ": %s", p.styles.Error.Render(err.Error()))
	}
	fmt.Fprintln(p.writer)
}

// Field logs a key-value pair with pretty formatting
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "%s: %s\n",
		p.styles.Key.Render(key),
		p.styles.Value.Render(fmt.Sprint(value)))
}

// Path logs a file path with special formatting
func (p *PrettyLogger) Path(label string, path string) {
	fmt.Fprintf(p.writer, "%s: %s\n",
		p.styles.Key.Render(label),
		p.styles.Path.Render(path))
}

// Rename logs a single rename as "from → to"
func (p *PrettyLogger) Rename(from, to string) {
	fmt.Fprintf(p.writer, "  %s %s %s\n",
		p.styles.Path.Render(from),
		p.styles.Arrow.Render("→"),
		p.styles.Path.Render(to))
}

// Blank prints a blank line
func (p *PrettyLogger) Blank() {
	fmt.Fprintln(p.writer)
}
