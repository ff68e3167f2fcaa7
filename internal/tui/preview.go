package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jasonKoogler/iqc/internal/export"
	"github.com/jasonKoogler/iqc/internal/preview"
)

// PreviewModel renders the preview panel and runs its async work
type PreviewModel struct {
	panel   *preview.Panel
	spinner SpinnerModel
	width   int
	height  int
}

// NewPreview wraps a panel
func NewPreview(panel *preview.Panel) PreviewModel {
	return PreviewModel{
		panel:   panel,
		spinner: NewSpinner(),
	}
}

// SetSize sets the panel dimensions
func (m *PreviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Busy reports whether the spinner should run
func (m PreviewModel) Busy() bool {
	switch m.panel.State() {
	case preview.StateLoading:
		return true
	case preview.StateRendering:
		return m.panel.LoadError() == nil
	}
	return false
}

// syncSpinner starts or stops the spinner to match the panel state
func (m *PreviewModel) syncSpinner() tea.Cmd {
	if m.Busy() {
		return m.spinner.Start()
	}
	m.spinner.Stop()
	return nil
}

// Update advances the spinner
func (m PreviewModel) Update(msg tea.Msg) (PreviewModel, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// loadCmd fetches and decodes the panel's current URL
func loadCmd(panel *preview.Panel) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), PreviewLoadTimeout)
		defer cancel()

		url, info, err := panel.Load(ctx)
		if err != nil {
			return previewFailedMsg{url: url, err: err}
		}
		return previewLoadedMsg{url: url, info: info}
	}
}

// downloadCmd saves the current image
func downloadCmd(panel *preview.Panel) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ExportTimeout)
		defer cancel()

		path, err := panel.Download(ctx)
		return exportDoneMsg{kind: exportDownload, path: path, err: err}
	}
}

// shareCmd hands the current image to the share capability
func shareCmd(panel *preview.Panel) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ExportTimeout)
		defer cancel()

		return exportDoneMsg{kind: exportShare, err: panel.Share(ctx)}
	}
}

// View renders the panel body for the current state
func (m PreviewModel) View(theme Theme) string {
	state := m.panel.State()
	header := theme.Title.Render("Preview") + " " + theme.Subtle.Render(titleCase(state.String()))

	var body []string
	switch state {
	case preview.StateEmpty:
		body = append(body, theme.Subtle.Render(EmptyPreviewMsg))

	case preview.StateLoading:
		body = append(body, m.spinner.View()+" "+GeneratingMsg)

	case preview.StateRendering:
		if err := m.panel.LoadError(); err != nil {
			body = append(body, RenderLoadError(theme, err))
		} else {
			body = append(body, m.spinner.View()+" "+RenderingMsg)
		}
		body = append(body, "", theme.Subtle.Render(truncateMiddle(m.panel.URL(), m.width-4)))

	case preview.StateLoaded:
		body = append(body,
			theme.Success.Render("✓ ")+theme.Normal.Render(m.panel.Info().String()),
			"",
			theme.Subtle.Render(truncateMiddle(m.panel.URL(), m.width-4)),
		)
	}

	enabled := m.panel.CanExport()
	shareLabel := "Share (ctrl+o)"
	if m.panel.ShareCapability() == export.Unavailable {
		shareLabel = "Share (ctrl+o, unsupported)"
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderButton(theme, "Download (ctrl+d)", enabled),
		" ",
		RenderButton(theme, shareLabel, enabled),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(body, "\n"), "", buttons)
}
