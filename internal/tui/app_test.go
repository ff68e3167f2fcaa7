package tui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	apperrors "github.com/jasonKoogler/iqc/internal/errors"
	"github.com/jasonKoogler/iqc/internal/export"
	"github.com/jasonKoogler/iqc/internal/fetch"
	"github.com/jasonKoogler/iqc/internal/generation"
	"github.com/jasonKoogler/iqc/internal/logging"
	"github.com/jasonKoogler/iqc/internal/preview"
	"github.com/jasonKoogler/iqc/internal/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTask struct{ stopped bool }

func (t *manualTask) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type scheduled struct {
	task *manualTask
	f    func()
}

type manualScheduler struct{ tasks []scheduled }

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) generation.Task {
	t := &manualTask{}
	s.tasks = append(s.tasks, scheduled{task: t, f: f})
	return t
}

func (s *manualScheduler) fireLast() {
	last := s.tasks[len(s.tasks)-1]
	if !last.task.stopped {
		last.f()
	}
}

type pngFetcher struct{ data []byte }

func (f pngFetcher) Fetch(ctx context.Context, url string) (fetch.Payload, error) {
	return fetch.Payload{Data: f.data, ContentType: "image/png"}, nil
}

// countingGenerator records how often the screen submits
type countingGenerator struct {
	*generation.Controller
	submits int
}

func (g *countingGenerator) Submit(req request.GenerationRequest) error {
	g.submits++
	return g.Controller.Submit(req)
}

type testHarness struct {
	app       *App
	gen       *countingGenerator
	scheduler *manualScheduler
	now       time.Time
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 8))))

	builder, err := request.NewBuilder("https://render.example/iqc")
	require.NoError(t, err)

	h := &testHarness{scheduler: &manualScheduler{}, now: time.Unix(1700000000, 0)}
	controller := generation.NewController(builder,
		generation.WithClock(func() time.Time { return h.now }),
		generation.WithScheduler(h.scheduler),
	)
	h.gen = &countingGenerator{Controller: controller}
	saver, err := export.NewDirSaver(t.TempDir())
	require.NoError(t, err)
	panel := preview.NewPanel(pngFetcher{data: buf.Bytes()}, saver, export.UnavailableSharer{})

	h.app = newApp(h.gen, panel, logging.NewNullLogger(), DefaultTheme(), FormDefaults{
		Carrier: request.Carrier5G,
		Battery: 80,
		Now:     func() time.Time { return h.now },
	})
	return h
}

func (h *testHarness) press(k tea.KeyType) tea.Cmd {
	_, cmd := h.app.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestSubmitBlankMessageShowsToast(t *testing.T) {
	h := newHarness(t)
	h.app.form.text.SetValue("   ")

	h.press(tea.KeyCtrlG)

	toast, ok := h.app.toast.Current()
	require.True(t, ok)
	assert.Equal(t, "Write a message first.", toast.Text)
	assert.Zero(t, h.gen.submits, "blank text must not reach the controller")
	assert.Equal(t, uint64(0), h.app.controller.Session().Generation)
	assert.Equal(t, preview.StateEmpty, h.app.panel.State())

	h.app.form.text.SetValue("Hi")
	h.press(tea.KeyCtrlG)
	assert.Equal(t, 1, h.gen.submits)
}

func TestSubmitThrottledShowsRemainingSeconds(t *testing.T) {
	h := newHarness(t)
	h.app.form.text.SetValue("Hi")

	h.press(tea.KeyCtrlG)
	require.Equal(t, generation.StatusLoading, h.app.session.Status)
	assert.Equal(t, preview.StateLoading, h.app.panel.State())

	h.now = h.now.Add(3 * time.Second)
	h.press(tea.KeyCtrlG)

	toast, ok := h.app.toast.Current()
	require.True(t, ok)
	assert.Equal(t, apperrors.LevelWarning, toast.Level)
	assert.Equal(t, "Security system active: please wait 2 more seconds.", toast.Text)
	assert.Equal(t, uint64(1), h.app.session.Generation)
}

func TestReadySessionLoadsPreview(t *testing.T) {
	h := newHarness(t)
	h.app.form.text.SetValue("Hi")
	h.press(tea.KeyCtrlG)

	h.scheduler.fireLast()
	h.app.Update(sessionMsg{session: h.app.controller.Session()})
	require.Equal(t, preview.StateRendering, h.app.panel.State())
	assert.Nil(t, h.press(tea.KeyCtrlD), "download is disabled until the image decodes")

	msg := loadCmd(h.app.panel)()
	loaded, ok := msg.(previewLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, "png", loaded.info.Format)

	h.app.Update(msg)
	assert.Equal(t, preview.StateLoaded, h.app.panel.State())
	assert.NotNil(t, h.press(tea.KeyCtrlD))
}

func TestPreviewLoadFailureSuggestsRetry(t *testing.T) {
	h := newHarness(t)
	h.app.form.text.SetValue("Hi")
	h.press(tea.KeyCtrlG)
	h.scheduler.fireLast()
	h.app.Update(sessionMsg{session: h.app.controller.Session()})

	_, err := preview.Decode([]byte("not an image"))
	require.Error(t, err)
	h.app.Update(previewFailedMsg{url: h.app.panel.URL(), err: err})

	view := h.app.preview.View(h.app.theme)
	assert.Contains(t, view, LoadRetryMsg)
	assert.NotContains(t, view, "ctrl+c")
	assert.NotNil(t, h.press(tea.KeyCtrlR))
}

func TestRenderLoadError(t *testing.T) {
	theme := DefaultTheme()

	fetchErr := fmt.Errorf("%w: status 502", apperrors.ErrFetchFailed)
	assert.Contains(t, RenderLoadError(theme, fetchErr), FetchRetryMsg)

	_, decodeErr := preview.Decode(nil)
	assert.Contains(t, RenderLoadError(theme, decodeErr), LoadRetryMsg)
}

func TestShareUnsupportedShowsInfoToast(t *testing.T) {
	h := newHarness(t)
	h.app.form.text.SetValue("Hi")
	h.press(tea.KeyCtrlG)
	h.scheduler.fireLast()
	h.app.Update(sessionMsg{session: h.app.controller.Session()})
	h.app.Update(loadCmd(h.app.panel)())

	h.app.Update(shareCmd(h.app.panel)())

	toast, ok := h.app.toast.Current()
	require.True(t, ok)
	assert.Equal(t, apperrors.LevelInfo, toast.Level)
	assert.Contains(t, toast.Text, "Please download first")
}

func TestStaleSessionSnapshotIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.app.form.text.SetValue("Hi")
	h.press(tea.KeyCtrlG)
	h.scheduler.fireLast()
	ready := h.app.controller.Session()
	h.app.Update(sessionMsg{session: ready})

	// The Loading snapshot from the same submission arrives late.
	h.app.Update(sessionMsg{session: generation.Session{Status: generation.StatusLoading, Generation: ready.Generation}})
	assert.Equal(t, generation.StatusReady, h.app.session.Status)
	assert.Equal(t, preview.StateRendering, h.app.panel.State())
}

func TestSessionNewer(t *testing.T) {
	tests := []struct {
		name      string
		candidate generation.Session
		current   generation.Session
		want      bool
	}{
		{"higher generation", generation.Session{Generation: 2, Status: generation.StatusLoading}, generation.Session{Generation: 1, Status: generation.StatusReady}, true},
		{"lower generation", generation.Session{Generation: 1, Status: generation.StatusReady}, generation.Session{Generation: 2, Status: generation.StatusLoading}, false},
		{"ready after loading", generation.Session{Generation: 1, Status: generation.StatusReady}, generation.Session{Generation: 1, Status: generation.StatusLoading}, true},
		{"failed after loading", generation.Session{Generation: 1, Status: generation.StatusFailed}, generation.Session{Generation: 1, Status: generation.StatusLoading}, true},
		{"duplicate", generation.Session{Generation: 1, Status: generation.StatusLoading}, generation.Session{Generation: 1, Status: generation.StatusLoading}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sessionNewer(tt.candidate, tt.current))
		})
	}
}

func TestToastExpiry(t *testing.T) {
	var m ToastModel
	m.Success("first")
	m.Success("second")

	m = m.Update(toastExpiredMsg{id: 1})
	current, ok := m.Current()
	require.True(t, ok, "an older timer must not dismiss a newer toast")
	assert.Equal(t, "second", current.Text)

	m = m.Update(toastExpiredMsg{id: 2})
	_, ok = m.Current()
	assert.False(t, ok)
}

func TestViewRendersWithoutSize(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.app.View(), "IQC iPhone Chat Generator")

	h.app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, h.app.View(), EmptyPreviewMsg)
}
