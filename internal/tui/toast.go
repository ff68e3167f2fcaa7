package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	apperrors "github.com/jasonKoogler/iqc/internal/errors"
)

// Toast is a transient notification
type Toast struct {
	ID    int
	Level apperrors.Level
	Text  string
	Good  bool
}

// ToastModel shows at most one toast; a newer toast replaces the current one
type ToastModel struct {
	current *Toast
	nextID  int
}

// Current returns the visible toast, if any
func (m ToastModel) Current() (Toast, bool) {
	if m.current == nil {
		return Toast{}, false
	}
	return *m.current, true
}

func (m *ToastModel) show(t Toast) tea.Cmd {
	m.nextID++
	t.ID = m.nextID
	m.current = &t

	id := t.ID
	return tea.Tick(ToastDuration, func(_ time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Success shows a confirmation
func (m *ToastModel) Success(text string) tea.Cmd {
	return m.show(Toast{Level: apperrors.LevelInfo, Text: text, Good: true})
}

// FromError shows the user-facing message for err
func (m *ToastModel) FromError(err error) tea.Cmd {
	level, text := apperrors.Classify(err)
	return m.show(Toast{Level: level, Text: text})
}

// Update dismisses expired toasts
func (m ToastModel) Update(msg tea.Msg) ToastModel {
	if msg, ok := msg.(toastExpiredMsg); ok {
		if m.current != nil && m.current.ID == msg.id {
			m.current = nil
		}
	}
	return m
}

// View renders the toast line
func (m ToastModel) View(theme Theme) string {
	t, ok := m.Current()
	if !ok {
		return ""
	}
	switch {
	case t.Good:
		return theme.Success.Render(t.Text)
	case t.Level == apperrors.LevelInfo:
		return theme.Info.Render("ℹ " + t.Text)
	case t.Level == apperrors.LevelWarning:
		return theme.Warning.Render("! " + t.Text)
	default:
		return theme.Error.Render("✗ " + t.Text)
	}
}
