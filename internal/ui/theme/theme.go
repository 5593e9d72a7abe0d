package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, purple through blue to pink like the gradient branding
var (
	Primary   = lipgloss.Color("#A855F7") // Purple
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#EC4899") // Pink
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F9FAFB")
	TextDim   = lipgloss.Color("#9CA3AF")
	BgDark    = lipgloss.Color("#111827")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

// dark tracks the active mode for IsDark.
var dark = true

// SetDarkMode switches the neutral colors between the dark and light
// palettes. Accent colors stay the same in both modes. Styles are built
// inline from the color vars, so the swap takes effect on the next render.
func SetDarkMode(on bool) {
	dark = on
	if on {
		Text = lipgloss.Color("#F9FAFB")
		TextDim = lipgloss.Color("#9CA3AF")
		BgDark = lipgloss.Color("#111827")
		BgCard = lipgloss.Color("#1F2937")
		Border = lipgloss.Color("#374151")
		return
	}
	Text = lipgloss.Color("#111827")
	TextDim = lipgloss.Color("#6B7280")
	BgDark = lipgloss.Color("#F9FAFB")
	BgCard = lipgloss.Color("#E5E7EB")
	Border = lipgloss.Color("#D1D5DB")
}

// IsDark reports the active mode.
func IsDark() bool { return dark }

// Typography helpers. Built per call so they pick up mode switches.

func Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
}

func Subtitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
}

func Body() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Text)
}

func Hint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TextDim).Italic(true)
}

func Card() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
}

func Selected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Primary).Bold(true)
}

func Correct() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Success).Bold(true)
}

func Incorrect() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Error).Bold(true)
}
