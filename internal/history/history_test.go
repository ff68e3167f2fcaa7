package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/jasonKoogler/iqc/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	base := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	require.NoError(t, r.Record(Event{Timestamp: base, Action: ActionGenerate, Generation: 1, Status: "ready"}))
	require.NoError(t, r.Record(Event{Timestamp: base.Add(2 * time.Hour), Action: ActionGenerate, Generation: 2, Status: "ready"}))

	r.now = func() time.Time { return base.Add(3 * time.Hour) }
	require.NoError(t, r.RecordExport(ActionDownload, "https://x", "/tmp/a.png", nil))

	events, err := r.Recent(0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, ActionDownload, events[0].Action)
	assert.Equal(t, uint64(2), events[1].Generation)
	assert.Equal(t, uint64(1), events[2].Generation)

	limited, err := r.Recent(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	files, err := filepath.Glob(filepath.Join(r.dir, "*.jsonl"))
	require.NoError(t, err)
	assert.Len(t, files, 2, "events are split by month")
}

func TestRecordExportFailure(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, r.RecordExport(ActionShare, "https://x", "", errors.New("no share target")))

	events, err := r.Recent(1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, StatusFailed, events[0].Status)
	assert.Equal(t, "no share target", events[0].Error)
}

func TestRecentSkipsCorruptLines(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, r.Record(Event{Action: ActionGenerate, Status: "ready"}))

	f, err := os.OpenFile(r.pathFor(r.now()), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	events, err := r.Recent(0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRecentToleratesLongLines(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	long := "https://render.example/iqc?prompt=" + strings.Repeat("%20", 30000)
	huge := strings.Repeat("x", maxEventLine+1)

	require.NoError(t, r.Record(Event{Action: ActionGenerate, Generation: 1, Status: "ready"}))
	require.NoError(t, r.Record(Event{Action: ActionGenerate, Generation: 2, Status: "ready", URL: long}))
	require.NoError(t, r.Record(Event{Action: ActionGenerate, Generation: 3, Status: "ready", URL: huge}))
	require.NoError(t, r.Record(Event{Action: ActionGenerate, Generation: 4, Status: "ready"}))

	events, err := r.Recent(0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, uint64(4), events[0].Generation)
	assert.Equal(t, uint64(2), events[1].Generation)
	assert.Equal(t, long, events[1].URL)
	assert.Equal(t, uint64(1), events[2].Generation)
}

func TestRecordExportShareUnsupported(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, r.RecordExport(ActionShare, "https://x", "", apperrors.ErrShareUnsupported))

	events, err := r.Recent(1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, StatusUnsupported, events[0].Status)
	assert.Empty(t, events[0].Error)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NoError(t, r.Record(Event{Action: ActionGenerate}))
}
