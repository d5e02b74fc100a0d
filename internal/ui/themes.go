package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/LifeStrat/internal/formatter"
)

// Theme represents a color theme for the wizard
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	Border lipgloss.AdaptiveColor
	Muted  lipgloss.AdaptiveColor
}

func buildTheme(name string, primary, secondary, accent, success, errorColor, border, muted [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:    lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:   lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#6D28D9", "#A78BFA"}, [2]string{"#1E40AF", "#60A5FA"}, [2]string{"#B45309", "#FBBF24"},
		[2]string{"#059669", "#10B981"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"})

	MonoTheme = buildTheme("mono",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#333333", "#DDDDDD"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#666666", "#BBBBBB"}, [2]string{"#666666", "#BBBBBB"})
)

// ThemeByName returns the named theme; unknown names fall back to the default
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme, true
	case "mono":
		return MonoTheme, true
	default:
		return DefaultTheme, false
	}
}

// IsColorDisabled checks the NO_COLOR convention
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles contains the styled components of the wizard
type Styles struct {
	Theme Theme
	Color bool

	Title   lipgloss.Style
	Header  lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	Box      lipgloss.Style
	Progress lipgloss.Style
}

// NewStyles builds the wizard styles for a theme. Without color every style
// is plain.
func NewStyles(theme Theme, color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Theme:    theme,
			Title:    plain.Bold(true),
			Header:   plain,
			Body:     plain,
			Muted:    plain,
			Label:    plain,
			Success:  plain,
			Error:    plain,
			Box:      plain.Border(lipgloss.NormalBorder()).Padding(1, 2),
			Progress: plain,
		}
	}

	return &Styles{
		Theme: theme,
		Color: true,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Progress: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
	}
}

// Fragment returns the report fragment styles matching the theme
func (s *Styles) Fragment() formatter.Styles {
	if !s.Color {
		return formatter.PlainStyles()
	}

	fs := formatter.DefaultStyles()
	fs.Headings[0] = lipgloss.NewStyle().Bold(true).Foreground(s.Theme.Primary)
	fs.Headings[1] = lipgloss.NewStyle().Bold(true).Foreground(s.Theme.Secondary)
	fs.Headings[2] = lipgloss.NewStyle().Bold(true).Foreground(s.Theme.Accent)
	fs.Emphasis = lipgloss.NewStyle().Bold(true).Foreground(s.Theme.Accent)
	fs.Bullet = lipgloss.NewStyle().Foreground(s.Theme.Secondary)
	fs.Rule = lipgloss.NewStyle().Foreground(s.Theme.Muted)
	return fs
}
