package viz

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of the live view. Glyph shades run from Trail
// (oldest visible) to Head (just drawn).
type Theme struct {
	Name   string
	Head   lipgloss.Color
	Glyph  lipgloss.Color
	Trail  lipgloss.Color
	NavBg  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
}

var (
	ThemeMatrix = Theme{
		Name:   "matrix",
		Head:   lipgloss.Color("#d8ffd8"),
		Glyph:  lipgloss.Color("#0aff0a"),
		Trail:  lipgloss.Color("#023b02"),
		NavBg:  lipgloss.Color("#0b3d0b"),
		Text:   lipgloss.Color("#e0ffe0"),
		Muted:  lipgloss.Color("#2f6f2f"),
		Accent: lipgloss.Color("#88ff88"),
	}

	ThemeAmber = Theme{
		Name:   "amber",
		Head:   lipgloss.Color("#fff1cc"),
		Glyph:  lipgloss.Color("#ffb000"),
		Trail:  lipgloss.Color("#3d2a00"),
		NavBg:  lipgloss.Color("#4a3300"),
		Text:   lipgloss.Color("#ffe6a8"),
		Muted:  lipgloss.Color("#806020"),
		Accent: lipgloss.Color("#ffd866"),
	}

	ThemeIce = Theme{
		Name:   "ice",
		Head:   lipgloss.Color("#ffffff"),
		Glyph:  lipgloss.Color("#66d9ff"),
		Trail:  lipgloss.Color("#0a2a3d"),
		NavBg:  lipgloss.Color("#0e3a55"),
		Text:   lipgloss.Color("#e0f6ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Accent: lipgloss.Color("#ffd700"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Head:   lipgloss.Color("#fff5f5"),
		Glyph:  lipgloss.Color("#ff6b6b"),
		Trail:  lipgloss.Color("#2d1b2e"),
		NavBg:  lipgloss.Color("#4a2040"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#feca57"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Head:   lipgloss.Color("#ffffff"),
		Glyph:  lipgloss.Color("#bbbbbb"),
		Trail:  lipgloss.Color("#222222"),
		NavBg:  lipgloss.Color("#333333"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#777777"),
		Accent: lipgloss.Color("#0088ff"),
	}

	CurrentTheme = ThemeMatrix

	Themes = []Theme{
		ThemeMatrix,
		ThemeAmber,
		ThemeIce,
		ThemeSunset,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to matrix.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMatrix
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Ramp returns n styles from dimmest to brightest. The brightest shade is the
// head color in bold.
func (t Theme) Ramp(n int) []lipgloss.Style {
	if n < 2 {
		n = 2
	}
	ramp := make([]lipgloss.Style, n)
	for i := 0; i < n-1; i++ {
		k := float64(i) / float64(n-2)
		if n == 2 {
			k = 1
		}
		ramp[i] = lipgloss.NewStyle().Foreground(blend(t.Trail, t.Glyph, k))
	}
	ramp[n-1] = lipgloss.NewStyle().Foreground(t.Head).Bold(true)
	return ramp
}
