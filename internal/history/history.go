// internal/history/history.go
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	apperrors "github.com/jasonKoogler/iqc/internal/errors"
)

// Action names recorded in the history
const (
	ActionGenerate = "generate"
	ActionDownload = "download"
	ActionShare    = "share"
)

// Export outcomes
const (
	StatusOK          = "ok"
	StatusFailed      = "failed"
	StatusUnsupported = "unsupported"
)

// maxEventLine bounds a single history line; longer lines are skipped on read
const maxEventLine = 1 << 20

// Event is one line of the history log
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	Generation uint64    `json:"generation,omitempty"`
	Status     string    `json:"status"`
	URL        string    `json:"url,omitempty"`
	Path       string    `json:"path,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Recorder appends events to monthly JSON-lines files
type Recorder struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

// NewRecorder creates a recorder writing under configDir/history
func NewRecorder(configDir string) (*Recorder, error) {
	dir := filepath.Join(configDir, "history")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Recorder{dir: dir, now: time.Now}, nil
}

func (r *Recorder) pathFor(t time.Time) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s-history.jsonl", t.Format("2006-01")))
}

// Record appends an event
func (r *Recorder) Record(event Event) error {
	if r == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = r.now()
	}

	line, err := json.Marshal(event)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.pathFor(event.Timestamp), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// RecordExport records a download or share outcome. A missing share
// capability is recorded as unsupported, not as a failure.
func (r *Recorder) RecordExport(action, url, path string, err error) error {
	event := Event{Action: action, URL: url, Path: path, Status: StatusOK}
	switch {
	case apperrors.Is(err, apperrors.ErrShareUnsupported):
		event.Status = StatusUnsupported
	case err != nil:
		event.Status = StatusFailed
		event.Error = err.Error()
	}
	return r.Record(event)
}

// Recent returns up to limit events, newest first. Unparseable and over-long
// lines are skipped.
func (r *Recorder) Recent(limit int) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(r.dir, "*-history.jsonl"))
	if err != nil {
		return nil, err
	}
	// Month-stamped names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	var events []Event
	for _, path := range files {
		fileEvents, err := readEvents(path)
		if err != nil {
			return nil, err
		}
		for i := len(fileEvents) - 1; i >= 0; i-- {
			events = append(events, fileEvents[i])
			if limit > 0 && len(events) >= limit {
				return events, nil
			}
		}
	}
	return events, nil
}

func readEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []Event
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 && len(line) <= maxEventLine {
			var e Event
			if json.Unmarshal(line, &e) == nil {
				events = append(events, e)
			}
		}
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
