package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/prmonitor/internal/domain"
)

// Main CLI styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)
)

// State icon styles
var (
	ClosedIconStyle = lipgloss.NewStyle().
			Foreground(ColorClosed)

	MergedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorClosed).
				Bold(true)

	OpenIconStyle = lipgloss.NewStyle().
			Foreground(ColorOpen)
)

// Apply selects light or dark colors from the stored preference.
// ThemeSystem keeps lipgloss' own terminal detection.
func Apply(t domain.Theme) {
	switch t {
	case domain.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case domain.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// StateIcon renders the coloured status symbol of a tracked pull request
func StateIcon(pr domain.TrackedPullRequest) string {
	if pr.IsOpen() {
		return OpenIconStyle.Render(domain.SymbolOpen)
	}
	return ClosedIconStyle.Render(domain.SymbolClosed)
}

// StateLabel renders "open", "closed" or "merged"
func StateLabel(pr domain.TrackedPullRequest) string {
	switch {
	case pr.IsOpen():
		return OpenIconStyle.Render("open")
	case pr.Merged:
		return MergedLabelStyle.Render("merged")
	default:
		return ClosedIconStyle.Render("closed")
	}
}
