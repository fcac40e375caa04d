package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Pull request state colors
const (
	ColorClosed Color = "141" // Purple - closed or merged
	ColorOpen   Color = "2"   // Green - still open
)

// UI semantic colors, adapted to the terminal background
var (
	ColorError     = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "232", Dark: "255"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "245", Dark: "241"}
	ColorNormal    = lipgloss.AdaptiveColor{Light: "236", Dark: "250"}
)
