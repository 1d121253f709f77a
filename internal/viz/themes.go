package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the CLI output.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:     "ocean",
		Primary:  lipgloss.Color("#00a8cc"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Positive: lipgloss.Color("#00ff88"),
		Negative: lipgloss.Color("#ff6b6b"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Primary:  lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Positive: lipgloss.Color("#00ff00"),
		Negative: lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Primary:  lipgloss.Color("#ff6b6b"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Positive: lipgloss.Color("#5fd068"),
		Negative: lipgloss.Color("#ff4757"),
	}

	CurrentTheme = ThemeOcean

	Themes = []Theme{
		ThemeOcean,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

// SetTheme changes the current theme and restyles the package styles.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
	applyTheme(CurrentTheme)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
