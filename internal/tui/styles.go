package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusLine joins status items with a separator
func RenderStatusLine(theme Theme, items []string) string {
	return theme.Status.Render(strings.Join(items, " • "))
}

// RenderButton draws an action button, greyed out when disabled
func RenderButton(theme Theme, label string, enabled bool) string {
	if enabled {
		return theme.PrimaryButton.Render(label)
	}
	return theme.DisabledButton.Render(label)
}

// RenderField draws a labelled form field, highlighting the focused one
func RenderField(theme Theme, label, body string, focused bool) string {
	style := theme.Subtle
	marker := "  "
	if focused {
		style = theme.Highlight
		marker = "> "
	}
	return lipgloss.JoinVertical(lipgloss.Left, style.Render(marker+label), body)
}
