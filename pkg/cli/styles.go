package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the terminal colors.
type Theme struct {
	Success lipgloss.Color
	Info    lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Dim     lipgloss.Color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Success: lipgloss.Color("#00ff9f"),
	Info:    lipgloss.Color("#58a6ff"),
	Warning: lipgloss.Color("#d29922"),
	Error:   lipgloss.Color("#f85149"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds the styles derived from a theme.
type Styles struct {
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Label   lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Success: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Info:    lipgloss.NewStyle().Foreground(t.Info),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Dim:     lipgloss.NewStyle().Foreground(t.Dim),
	}
}

var styles = NewStyles(DefaultTheme)

// Stdout and Stderr are the destinations of the print helpers.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// PrintSuccess prints a success message with checkmark
func PrintSuccess(format string, args ...any) {
	fmt.Fprintln(Stdout, styles.Success.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...any) {
	fmt.Fprintln(Stderr, styles.Error.Render("Error:")+" "+fmt.Sprintf(format, args...))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...any) {
	fmt.Fprintln(Stdout, styles.Info.Render("ℹ")+" "+fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...any) {
	fmt.Fprintln(Stdout, styles.Warning.Render("⚠")+" "+fmt.Sprintf(format, args...))
}

// PrintField prints an aligned "label: value" line.
func PrintField(label string, value any) {
	fmt.Fprintf(Stdout, "  %s %v\n", styles.Label.Width(14).Render(label+":"), value)
}

// PrintVerbose prints verbose output to stderr
func PrintVerbose(verbose bool, format string, args ...any) {
	if verbose {
		fmt.Fprintln(Stderr, styles.Dim.Render("[verbose] "+fmt.Sprintf(format, args...)))
	}
}
