// internal/ui/progress.go
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ProgressIndicator reports the phases of a generate run
type ProgressIndicator interface {
	Start(message string)
	Update(message string)
	Success(message string)
	Failure(message string)
	Warning(message string)
	Info(message string)
	Stop()
}

var (
	successMark = color.New(color.FgGreen, color.Bold).Sprint("✓")
	failureMark = color.New(color.FgRed, color.Bold).Sprint("✗")
	warningMark = color.New(color.FgYellow, color.Bold).Sprint("!")
	infoMark    = color.New(color.FgCyan, color.Bold).Sprint("i")
)

// SpinnerProgress implements a spinner-based progress indicator
type SpinnerProgress struct {
	spinner *spinner.Spinner
	mu      sync.Mutex
	writer  io.Writer
}

// NewSpinnerProgress creates a new spinner progress indicator
func NewSpinnerProgress(w io.Writer) *SpinnerProgress {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = w

	return &SpinnerProgress{
		spinner: s,
		writer:  w,
	}
}

// Start begins the progress indicator with an initial message
func (p *SpinnerProgress) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinner.Suffix = " " + message
	p.spinner.Start()
}

// Update changes the message shown with the spinner
func (p *SpinnerProgress) Update(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinner.Suffix = " " + message
}

func (p *SpinnerProgress) finish(mark, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinner.Stop()
	fmt.Fprintf(p.writer, "%s %s\n", mark, message)
}

// Success stops the spinner and shows a success message
func (p *SpinnerProgress) Success(message string) { p.finish(successMark, message) }

// Failure stops the spinner and shows a failure message
func (p *SpinnerProgress) Failure(message string) { p.finish(failureMark, message) }

// Warning stops the spinner and shows a warning message
func (p *SpinnerProgress) Warning(message string) { p.finish(warningMark, message) }

// Info stops the spinner and shows an informational message
func (p *SpinnerProgress) Info(message string) { p.finish(infoMark, message) }

// Stop halts the spinner
func (p *SpinnerProgress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinner.Stop()
}

// SimpleProgress implements a line-based progress indicator for pipes and logs
type SimpleProgress struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewSimpleProgress creates a new simple text progress indicator
func NewSimpleProgress(w io.Writer) *SimpleProgress {
	return &SimpleProgress{
		writer: w,
	}
}

func (p *SimpleProgress) printf(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, format, args...)
}

// Start begins the progress with an initial message
func (p *SimpleProgress) Start(message string) { p.printf("▶ %s...\n", message) }

// Update prints an updated progress message
func (p *SimpleProgress) Update(message string) { p.printf("  %s...\n", message) }

// Success prints a success message
func (p *SimpleProgress) Success(message string) { p.printf("%s %s\n", successMark, message) }

// Failure prints a failure message
func (p *SimpleProgress) Failure(message string) { p.printf("%s %s\n", failureMark, message) }

// Warning prints a warning message
func (p *SimpleProgress) Warning(message string) { p.printf("%s %s\n", warningMark, message) }

// Info prints an informational message
func (p *SimpleProgress) Info(message string) { p.printf("%s %s\n", infoMark, message) }

// Stop is a no-op for SimpleProgress
func (p *SimpleProgress) Stop() {}

// CreateProgress picks the spinner when w is an interactive terminal and plain lines otherwise
func CreateProgress(w io.Writer, interactive bool) ProgressIndicator {
	if f, ok := w.(*os.File); ok && interactive && isTerminal(f) {
		return NewSpinnerProgress(f)
	}
	return NewSimpleProgress(w)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// FormatTable formats data as a table
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 || len(rows) == 0 {
		return ""
	}

	columnWidths := make([]int, len(headers))
	for i, header := range headers {
		columnWidths[i] = len(header)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(columnWidths) {
				continue
			}
			if len(cell) > columnWidths[i] {
				columnWidths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder

	for i, header := range headers {
		fmt.Fprintf(&sb, "%-*s", columnWidths[i]+2, header)
	}
	sb.WriteString("\n")

	for _, width := range columnWidths {
		sb.WriteString(strings.Repeat("-", width) + "  ")
	}
	sb.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(columnWidths) {
				continue
			}
			fmt.Fprintf(&sb, "%-*s", columnWidths[i]+2, cell)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
