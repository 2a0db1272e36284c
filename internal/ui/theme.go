package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the kiosk colors. Every theme is dark with light text so
// the panel stays readable at a distance.
type Theme struct {
	Name string

	Background string // Whole canvas
	Text       string // Time, date, temperature
	Muted      string // Last update footer
	Accent     string // Clock
}

// Styles returns Lipgloss styles for this theme. Every style carries the
// background explicitly so no cell falls through to the terminal default.
func (t Theme) Styles() Styles {
	bg := lipgloss.Color(t.Background)
	return Styles{
		Canvas: lipgloss.NewStyle().
			Background(bg).
			Width(CanvasCols).
			Height(CanvasRows).
			MaxHeight(CanvasRows),

		Time: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Width(CanvasCols).
			Height(TimeRows).
			Align(lipgloss.Center, lipgloss.Center),

		Date: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true).
			Width(CanvasCols).
			Height(DateRows).
			Align(lipgloss.Center, lipgloss.Top),

		Temperature: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true).
			Width(TemperatureCols).
			Height(MiddleRows).
			PaddingLeft(temperatureIndent).
			Align(lipgloss.Left, lipgloss.Center),

		Icon: lipgloss.NewStyle().
			Background(bg).
			Width(IconBoxCols).
			Height(MiddleRows).
			Align(lipgloss.Center, lipgloss.Center),

		LastUpdate: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Muted)).
			Width(CanvasCols).
			Height(LastUpdateRows).
			Align(lipgloss.Center),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Canvas      lipgloss.Style
	Time        lipgloss.Style
	Date        lipgloss.Style
	Temperature lipgloss.Style
	Icon        lipgloss.Style
	LastUpdate  lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:       "Nightfox",
		Background: "#131a24", // bg0
		Text:       "#cdcecf", // fg1
		Muted:      "#738091", // comment
		Accent:     "#dbc074", // yellow
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:       "Kanagawa",
		Background: "#16161D", // sumiInk0
		Text:       "#DCD7BA", // fujiWhite
		Muted:      "#727169", // fujiGray
		Accent:     "#E6C384", // carpYellow
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:       "Slate",
		Background: "#020617", // slate-950
		Text:       "#f1f5f9", // slate-100
		Muted:      "#94a3b8", // slate-400
		Accent:     "#38bdf8", // sky-400
	}
}
