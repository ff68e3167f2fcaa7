package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jasonKoogler/iqc/internal/request"
	"github.com/stretchr/testify/assert"
)

func testForm() FormModel {
	return NewForm(FormDefaults{
		Carrier: request.CarrierLTE,
		Battery: 99,
		Now:     func() time.Time { return time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC) },
	})
}

func send(f FormModel, msgs ...tea.KeyMsg) FormModel {
	for _, m := range msgs {
		f, _ = f.Update(m)
	}
	return f
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func TestFormDefaults(t *testing.T) {
	f := testForm()
	req := f.Request()

	assert.Equal(t, "09:30", req.Time)
	assert.Equal(t, request.CarrierLTE, req.Carrier)
	assert.Equal(t, 99, req.BatteryPercent)
	assert.False(t, f.CanSubmit())
}

func TestFormUnknownCarrierFallsBack(t *testing.T) {
	f := NewForm(FormDefaults{Carrier: "Carrier Pigeon", Battery: 150})
	assert.Equal(t, request.DefaultCarrier, f.Request().Carrier)
	assert.Equal(t, 100, f.Request().BatteryPercent)
}

func TestFormTyping(t *testing.T) {
	f := testForm()
	f = send(f, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Hi")})

	assert.Equal(t, "Hi", f.Request().Text)
	assert.True(t, f.CanSubmit())
}

func TestFormCarrierCyclesAndWraps(t *testing.T) {
	f := send(testForm(), tab, tab)
	assert.Equal(t, fieldCarrier, f.focus)

	f = send(f, right)
	assert.Equal(t, request.CarrierTelkomsel, f.Request().Carrier, "wraps past the last carrier")

	f = send(f, left)
	assert.Equal(t, request.CarrierLTE, f.Request().Carrier)
}

func TestFormBatteryClamps(t *testing.T) {
	f := send(testForm(), tab, tab, tab)
	assert.Equal(t, fieldBattery, f.focus)

	f = send(f, right, right, right)
	assert.Equal(t, 100, f.Request().BatteryPercent)

	f = send(f, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, f.Request().BatteryPercent)

	f = send(f, left)
	assert.Equal(t, 0, f.Request().BatteryPercent)
}

func TestFormShiftTabWraps(t *testing.T) {
	f := send(testForm(), tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldBattery, f.focus)
}

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "short", truncateMiddle("short", 10))
	assert.Equal(t, "abcd…6789", truncateMiddle("abcdefghij0123456789", 9))
	assert.Equal(t, "abc", truncateMiddle("abcdef", 3))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Rendering", titleCase("rendering"))
}
