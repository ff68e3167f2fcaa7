package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestSimpleProgressOutput(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	p := NewSimpleProgress(&buf)
	p.Start("Generating")
	p.Update("Waiting for the renderer")
	p.Success("Image ready")
	p.Warning("Share unavailable")
	p.Stop()

	out := buf.String()
	assert.Contains(t, out, "▶ Generating...")
	assert.Contains(t, out, "  Waiting for the renderer...")
	assert.Contains(t, out, "Image ready")
	assert.Contains(t, out, "Share unavailable")
}

func TestFormatTable(t *testing.T) {
	out := FormatTable(
		[]string{"KEY", "VALUE"},
		[][]string{{"api.endpoint", "https://x"}, {"ui.theme", "dark"}},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "KEY           VALUE"))
	assert.True(t, strings.HasPrefix(lines[1], "------------  -----"))
	assert.True(t, strings.HasPrefix(lines[3], "ui.theme      dark"))
}

func TestFormatTableEmpty(t *testing.T) {
	assert.Empty(t, FormatTable(nil, nil))
	assert.Empty(t, FormatTable([]string{"A"}, nil))
}

func TestCreateProgressFallsBackForBuffers(t *testing.T) {
	var buf bytes.Buffer
	_, ok := CreateProgress(&buf, true).(*SimpleProgress)
	assert.True(t, ok)
}
