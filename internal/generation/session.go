package generation

import "time"

// Status is the lifecycle state of the current generation
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is the single source of truth for the generation lifecycle.
// It is a value type; the controller hands out copies.
type Session struct {
	LastSubmittedAt time.Time
	Status          Status
	ResultURL       string
	// Generation increases on every accepted submission. Scheduled
	// transitions carry the generation they were created for.
	Generation uint64
}

// HasSubmitted reports whether any submission has been accepted yet
func (s Session) HasSubmitted() bool {
	return !s.LastSubmittedAt.IsZero()
}

// cooldownRemaining returns how long until another submission is allowed
func (s Session) cooldownRemaining(now time.Time, window time.Duration) time.Duration {
	if !s.HasSubmitted() {
		return 0
	}
	elapsed := now.Sub(s.LastSubmittedAt)
	if elapsed >= window {
		return 0
	}
	return window - elapsed
}
