package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Session status colors
const (
	ColorCancelled Color = "1"   // Red
	ColorCompleted Color = "2"   // Green
	ColorNoShow    Color = "3"   // Yellow
	ColorPayment   Color = "6"   // Cyan
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorWarning   Color = "214" // Orange - pending export counts
)

// ColorSpinner is the accent for in-progress indicators
const ColorSpinner Color = "205"
