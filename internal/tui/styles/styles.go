package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	MintLight = lipgloss.Color("#B9FBC0")
	Mint      = lipgloss.Color("#7CDEB0")
	Black     = lipgloss.Color("#000000")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Amber     = lipgloss.Color("#E5A00D")
	Red       = lipgloss.Color("#EF4444")
)

// Occupancy thresholds for count colouring
const (
	BusyThreshold = 0.75 // amber at or above
	FullThreshold = 0.95 // red at or above
)

// SpinnerFrames are shown next to the status while a fetch is in flight
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Card and text styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Mint).
			Padding(1, 4).
			Align(lipgloss.Center)

	TitleStyle = lipgloss.NewStyle().
			Foreground(MintLight).
			Bold(true)

	CountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Green)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Mint)
)

// colorCounts is false under the mono theme
var colorCounts = true

// UseMono replaces the palette styles with uncoloured variants.
func UseMono() {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(1, 4).
		Align(lipgloss.Center)
	TitleStyle = lipgloss.NewStyle().Bold(true)
	CountStyle = lipgloss.NewStyle().Bold(true)
	SubtitleStyle = lipgloss.NewStyle()
	DimStyle = lipgloss.NewStyle().Faint(true)
	ErrorStyle = lipgloss.NewStyle().Underline(true)
	SpinnerStyle = lipgloss.NewStyle()
	colorCounts = false
}

// CountColor picks the colour for the free-space count by occupancy ratio.
func CountColor(occupancy float64) lipgloss.Color {
	switch {
	case occupancy >= FullThreshold:
		return Red
	case occupancy >= BusyThreshold:
		return Amber
	default:
		return Green
	}
}

// CountStyleFor returns the count style coloured for the given occupancy.
func CountStyleFor(occupancy float64) lipgloss.Style {
	if !colorCounts {
		return CountStyle
	}
	return CountStyle.Foreground(CountColor(occupancy))
}
