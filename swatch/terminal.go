package swatch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wbrown/chameleon/theme"
)

var (
	nameStyle  = lipgloss.NewStyle().Width(20).PaddingLeft(1)
	valueStyle = lipgloss.NewStyle().PaddingLeft(2)
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	noteStyle  = lipgloss.NewStyle().Faint(true)
)

func hexColor(c uint32) lipgloss.Color {
	return lipgloss.Color("#" + theme.Format(c, theme.FormatHex))
}

// Terminal renders t as one colored row per role, each followed by the
// color value in format f.
func Terminal(t *theme.Theme, f theme.ColorFormat) string {
	title := "Theme"
	if t.Path != "" {
		title = t.Path
	}

	rows := []string{titleStyle.Render(title)}
	for _, tile := range Tiles(t) {
		chip := nameStyle.
			Background(hexColor(tile.Color)).
			Foreground(hexColor(LabelColor(tile.Color))).
			Render(tile.Name)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			chip, valueStyle.Render(theme.Format(tile.Color, f))))
	}

	if t.Fallback {
		rows = append(rows, "", noteStyle.Render("(fallback colors)"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Table renders t as plain "Role value" lines with no styling.
func Table(t *theme.Theme, f theme.ColorFormat) string {
	var sb strings.Builder
	for _, tile := range Tiles(t) {
		fmt.Fprintf(&sb, "%-20s %s\n", tile.Name, theme.Format(tile.Color, f))
	}
	return sb.String()
}
