package tui

import (
	"github.com/charmbracelet/lipgloss"

	"keyout/internal/config"
)

var (
	ColorInk       = lipgloss.Color("#E5E9F0")
	ColorDim       = lipgloss.Color("#7A8291")
	ColorAccent    = lipgloss.Color("#88C0D0")
	ColorAccentAlt = lipgloss.Color("#81A1C1")
	ColorSuccess   = lipgloss.Color("#A3BE8C")
	ColorWarn      = lipgloss.Color("#EBCB8B")
)

var (
	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	successStyle lipgloss.Style
	warnStyle    lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyPalette overrides the colors set in c. Empty entries keep the default.
func ApplyPalette(c config.Colors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&ColorInk, c.Ink)
	set(&ColorDim, c.Dim)
	set(&ColorAccent, c.Accent)
	set(&ColorAccentAlt, c.AccentAlt)
	set(&ColorSuccess, c.Success)
	set(&ColorWarn, c.Warn)
	buildStyles()
}

func buildStyles() {
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	dimStyle = lipgloss.NewStyle().Foreground(ColorDim)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	warnStyle = lipgloss.NewStyle().Foreground(ColorWarn)
}

// Style helpers for the command output.
func Title(s string) string   { return titleStyle.Render(s) }
func Dim(s string) string     { return dimStyle.Render(s) }
func Accent(s string) string  { return lipgloss.NewStyle().Foreground(ColorAccentAlt).Render(s) }
func Success(s string) string { return successStyle.Render(s) }
func Warn(s string) string    { return warnStyle.Render(s) }
