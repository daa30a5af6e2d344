package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette: named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module names, paths, artifacts.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "staged" module status (bright, high-visibility).
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "stale" module status (medium visibility).
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "removed" module status.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "failed" build status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorHeaderBlue is used for table headers.
	ColorHeaderBlue = lipgloss.Color("12")
)

// Styles groups the semantic styles used across commands.
type Styles struct {
	// Noun styles identifiable nouns (module names, paths, artifacts).
	Noun lipgloss.Style

	// Bold styles headings and action verbs.
	Bold lipgloss.Style

	// Muted styles structural chrome (descriptions, separators).
	Muted lipgloss.Style

	// Success styles added/staged lines.
	Success lipgloss.Style

	// Warning styles stale/skipped lines.
	Warning lipgloss.Style

	// Error styles removed/failed lines.
	Error lipgloss.Style
}

var defaultStyles = &Styles{
	Noun:    lipgloss.NewStyle().Foreground(ColorCyan),
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Faint(true),
	Success: lipgloss.NewStyle().Foreground(ColorGreen),
	Warning: lipgloss.NewStyle().Foreground(ColorYellow),
	Error:   lipgloss.NewStyle().Foreground(ColorRed),
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return defaultStyles
}

// Module status constants.
const (
	StatusStaged  = "staged"
	StatusStale   = "stale"
	StatusMissing = "missing"
	StatusFailed  = "failed"
)

// StatusStyle returns the lipgloss style for a given module status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusStaged:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusStale:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusMissing:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minModuleColumnWidth is the minimum width for the module name column
// before the status suffix. This keeps status words aligned.
const minModuleColumnWidth = 32

// FormatModuleLine renders a module name with a right-aligned, color-coded
// status suffix.
//
// Format: m:<name>  <status>
//
// The "m:" prefix is dim, the name is cyan, and the status uses StatusStyle.
func FormatModuleLine(name, status string) string {
	padding := minModuleColumnWidth - len(name)
	if padding < 2 {
		padding = 2
	}

	prefix := GetStyles().Muted.Render("m:")
	styledName := GetStyles().Noun.Render(name)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledName + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Successf prints a checkmarked success line to stdout.
func Successf(format string, args ...interface{}) {
	Println(FormatCheckmark(fmt.Sprintf(format, args...)))
}
