package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/EmbedScope/internal/ui/components"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Highlight  lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor

	// Plot colors
	Point      lipgloss.AdaptiveColor
	PointHover lipgloss.AdaptiveColor
	PointGrid  lipgloss.AdaptiveColor
	Hotspot    lipgloss.AdaptiveColor
}

// Point colors are fixed across themes: steelblue, orange, green
var (
	pointColor      = [2]string{"#4682B4", "#4682B4"}
	pointHoverColor = [2]string{"#FFA500", "#FFA500"}
	pointGridColor  = [2]string{"#008000", "#00A000"}
)

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, border, foreground, muted, highlight, selected [2]string) Theme {
	adaptive := func(c [2]string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
	}
	return Theme{
		Name:       name,
		Primary:    adaptive(primary),
		Secondary:  adaptive(secondary),
		Accent:     adaptive(accent),
		Success:    adaptive(success),
		Warning:    adaptive(warning),
		Error:      adaptive(errorColor),
		Border:     adaptive(border),
		Foreground: adaptive(foreground),
		Muted:      adaptive(muted),
		Highlight:  adaptive(highlight),
		Selected:   adaptive(selected),
		Point:      adaptive(pointColor),
		PointHover: adaptive(pointHoverColor),
		PointGrid:  adaptive(pointGridColor),
		Hotspot:    adaptive(errorColor),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#7C3AED", "#A855F7"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#111827", "#F9FAFB"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#FEF3C7", "#1F2937"}, [2]string{"#DBEAFE", "#1E3A8A"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#FFFF00", "#444444"}, [2]string{"#CCCCCC", "#333333"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#2D3748", "#F7FAFC"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#F7FAFC", "#2D3748"}, [2]string{"#EDF2F7", "#2D3748"})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	Status lipgloss.Style

	Table  components.TableStyles
	Canvas map[components.Kind]lipgloss.Style
}

// GetStyles builds styles from the current theme
func GetStyles() *Styles {
	theme := GetTheme()
	muted := lipgloss.NewStyle().Foreground(theme.Muted)

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Muted: muted,

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Table: components.TableStyles{
			Title: lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true),
			Header: lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Bold(true),
			Row: lipgloss.NewStyle().
				Foreground(theme.Foreground),
			Selected: lipgloss.NewStyle().
				Background(theme.Selected).
				Foreground(theme.Primary).
				Bold(true),
			Hovered: lipgloss.NewStyle().
				Background(theme.Highlight).
				Foreground(theme.PointGrid).
				Bold(true),
			Muted: muted,
		},

		Canvas: map[components.Kind]lipgloss.Style{
			components.KindAxis:         muted,
			components.KindLabel:        muted,
			components.KindTitle:        lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
			components.KindPoint:        lipgloss.NewStyle().Foreground(theme.Point),
			components.KindPointHover:   lipgloss.NewStyle().Foreground(theme.PointHover).Bold(true),
			components.KindPointGrid:    lipgloss.NewStyle().Foreground(theme.PointGrid).Bold(true),
			components.KindHotspot:      lipgloss.NewStyle().Foreground(theme.Hotspot),
			components.KindHotspotCount: lipgloss.NewStyle().Foreground(theme.Hotspot).Bold(true),
			components.KindTooltip:      lipgloss.NewStyle().Background(theme.Highlight).Foreground(theme.Foreground),
			components.KindHint:         lipgloss.NewStyle().Foreground(theme.Warning),
		},
	}
}
