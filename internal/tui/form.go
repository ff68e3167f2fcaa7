package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jasonKoogler/iqc/internal/request"
)

// formField identifies the focusable inputs in tab order
type formField int

const (
	fieldText formField = iota
	fieldTime
	fieldCarrier
	fieldBattery
	fieldCount
)

// FormDefaults seeds the form from configuration
type FormDefaults struct {
	Carrier request.Carrier
	Battery int
	Now     func() time.Time
}

// FormModel collects the generation request
type FormModel struct {
	text       textarea.Model
	clock      textinput.Model
	carriers   []request.Carrier
	carrierIdx int
	battery    int
	focus      formField
	width      int
}

// NewForm creates a form focused on the message field
func NewForm(defaults FormDefaults) FormModel {
	now := defaults.Now
	if now == nil {
		now = time.Now
	}

	text := textarea.New()
	text.Placeholder = "Type the chat message..."
	text.CharLimit = MessageCharLimit
	text.ShowLineNumbers = false
	text.SetHeight(4)
	text.Focus()

	clock := textinput.New()
	clock.Placeholder = "HH:MM"
	clock.CharLimit = TimeCharLimit
	clock.Width = TimeCharLimit + 1
	clock.SetValue(request.DefaultTime(now()))

	f := FormModel{
		text:     text,
		clock:    clock,
		carriers: request.Carriers(),
		battery:  clampBattery(defaults.Battery),
	}
	f.carrierIdx = f.indexOf(defaults.Carrier)
	return f
}

func (f FormModel) indexOf(c request.Carrier) int {
	for i, candidate := range f.carriers {
		if candidate == c {
			return i
		}
	}
	for i, candidate := range f.carriers {
		if candidate == request.DefaultCarrier {
			return i
		}
	}
	return 0
}

func clampBattery(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Request returns the values currently entered
func (f FormModel) Request() request.GenerationRequest {
	return request.GenerationRequest{
		Text:           f.text.Value(),
		Time:           strings.TrimSpace(f.clock.Value()),
		BatteryPercent: f.battery,
		Carrier:        f.carriers[f.carrierIdx],
	}
}

// CanSubmit reports whether the submit action is enabled
func (f FormModel) CanSubmit() bool {
	return f.Request().HasText()
}

// SetWidth resizes the text inputs
func (f *FormModel) SetWidth(width int) {
	f.width = width
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	f.text.SetWidth(inner)
}

func (f *FormModel) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.text.Blur()
	f.clock.Blur()

	switch field {
	case fieldText:
		return f.text.Focus()
	case fieldTime:
		return f.clock.Focus()
	}
	return nil
}

func (f *FormModel) cycleCarrier(delta int) {
	n := len(f.carriers)
	f.carrierIdx = ((f.carrierIdx+delta)%n + n) % n
}

// Init starts the cursor blink
func (f FormModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update routes keys to the focused field
func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			return f, f.setFocus((f.focus + 1) % fieldCount)
		case "shift+tab":
			return f, f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		}

		switch f.focus {
		case fieldCarrier:
			switch msg.String() {
			case "left", "h", "up", "k":
				f.cycleCarrier(-1)
			case "right", "l", "down", "j", " ":
				f.cycleCarrier(1)
			}
			return f, nil

		case fieldBattery:
			switch msg.String() {
			case "left", "h", "down", "j":
				f.battery = clampBattery(f.battery - BatteryStep)
			case "right", "l", "up", "k":
				f.battery = clampBattery(f.battery + BatteryStep)
			case "shift+left", "pgdown":
				f.battery = clampBattery(f.battery - BatteryBigStep)
			case "shift+right", "pgup":
				f.battery = clampBattery(f.battery + BatteryBigStep)
			case "home":
				f.battery = 0
			case "end":
				f.battery = 100
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldText:
		f.text, cmd = f.text.Update(msg)
	case fieldTime:
		f.clock, cmd = f.clock.Update(msg)
	}
	return f, cmd
}

func (f FormModel) carrierView(theme Theme) string {
	parts := make([]string, len(f.carriers))
	for i, c := range f.carriers {
		if i == f.carrierIdx {
			parts[i] = theme.Highlight.Render("[" + string(c) + "]")
		} else {
			parts[i] = theme.Subtle.Render(" " + string(c) + " ")
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (f FormModel) batteryView(theme Theme) string {
	const cells = 20
	filled := f.battery * cells / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)

	style := theme.Success
	if f.battery <= 20 {
		style = theme.Error
	}
	return fmt.Sprintf("%s %3d%%", style.Render(bar), f.battery)
}

// View renders the form
func (f FormModel) View(theme Theme) string {
	fields := []string{
		RenderField(theme, "Message", f.text.View(), f.focus == fieldText),
		RenderField(theme, "Time", f.clock.View(), f.focus == fieldTime),
		RenderField(theme, "Carrier", f.carrierView(theme), f.focus == fieldCarrier),
		RenderField(theme, "Battery", f.batteryView(theme), f.focus == fieldBattery),
		RenderButton(theme, "Generate (ctrl+g)", f.CanSubmit()),
	}
	return lipgloss.JoinVertical(lipgloss.Left, joinWithGaps(fields)...)
}

func joinWithGaps(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, p)
	}
	return out
}
