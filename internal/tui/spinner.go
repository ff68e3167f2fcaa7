package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SpinnerModel represents a simple spinner shown while the preview is busy
type SpinnerModel struct {
	frames  []string
	current int
	active  bool
}

// NewSpinner creates a new spinner
func NewSpinner() SpinnerModel {
	return SpinnerModel{
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Active reports whether the spinner is ticking
func (s SpinnerModel) Active() bool {
	return s.active
}

// Start activates the spinner. It returns nil if it is already running so
// only one tick chain exists at a time.
func (s *SpinnerModel) Start() tea.Cmd {
	if s.active {
		return nil
	}
	s.active = true
	return s.tick()
}

// Stop deactivates the spinner
func (s *SpinnerModel) Stop() {
	s.active = false
}

// View returns the current spinner frame
func (s SpinnerModel) View() string {
	if !s.active {
		return " "
	}
	return s.frames[s.current]
}

func (s SpinnerModel) tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

type tickMsg struct{}

// Update handles spinner updates
func (s SpinnerModel) Update(msg tea.Msg) (SpinnerModel, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if !s.active {
			return s, nil
		}
		s.current = (s.current + 1) % len(s.frames)
		return s, s.tick()
	}
	return s, nil
}
