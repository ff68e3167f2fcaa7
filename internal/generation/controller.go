// internal/generation/controller.go
package generation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jasonKoogler/iqc/internal/errors"
	"github.com/jasonKoogler/iqc/internal/logging"
	"github.com/jasonKoogler/iqc/internal/request"
)

const (
	// CooldownWindow is measured from the last accepted submission
	CooldownWindow = 5 * time.Second

	// ReadyDelay paces the Loading to Ready transition
	ReadyDelay = 2 * time.Second
)

// URLBuilder produces the fetch URL for a request
type URLBuilder interface {
	BuildURL(req request.GenerationRequest) (string, error)
}

// Observer is called with a copy of the session after each committed transition
type Observer func(Session)

// Controller owns the generation session and its transitions
type Controller struct {
	mu        sync.Mutex
	session   Session
	pending   Task
	builder   URLBuilder
	now       func() time.Time
	scheduler Scheduler
	observers []Observer
	logger    logging.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithScheduler overrides how the ready transition is scheduled
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.scheduler = s
	}
}

// WithLogger sets the controller logger
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// NewController creates a controller in the Idle state
func NewController(builder URLBuilder, opts ...Option) *Controller {
	c := &Controller{
		builder:   builder,
		now:       time.Now,
		scheduler: TimerScheduler(),
		logger:    logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers an observer for session transitions
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Session returns a copy of the current session
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Submit starts a new generation. It returns a *errors.ThrottleError while the
// cooldown is active and errors.ErrEmptyText for blank messages; in both cases
// the session is left untouched.
func (c *Controller) Submit(req request.GenerationRequest) error {
	if !req.HasText() {
		return apperrors.ErrEmptyText
	}

	c.mu.Lock()
	now := c.now()
	if remaining := c.session.cooldownRemaining(now, CooldownWindow); remaining > 0 {
		c.mu.Unlock()
		c.logger.Debug("Submission throttled, %s remaining", remaining)
		return &apperrors.ThrottleError{Remaining: remaining}
	}

	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}

	c.session.LastSubmittedAt = now
	c.session.Generation++
	c.session.Status = StatusLoading
	c.session.ResultURL = ""
	gen := c.session.Generation
	traceID := uuid.NewString()

	url, err := c.builder.BuildURL(req)
	if err != nil {
		c.session.Status = StatusFailed
		snapshot, observers := c.session, c.snapshotObservers()
		c.mu.Unlock()

		c.logger.Error("Generation %d (%s) failed to build request: %v", gen, traceID, err)
		notify(observers, snapshot)
		return apperrors.NewAppError(fmt.Errorf("%w: %v", apperrors.ErrBuildFailed, err), "submit",
			"Failed to create the image. Try again later.")
	}

	c.pending = c.scheduler.AfterFunc(ReadyDelay, func() {
		c.complete(gen, url, traceID)
	})
	snapshot, observers := c.session, c.snapshotObservers()
	c.mu.Unlock()

	c.logger.Info("Generation %d (%s) accepted, carrier %s", gen, traceID, req.Carrier)
	notify(observers, snapshot)
	return nil
}

// complete commits the Ready transition unless a newer submission superseded gen
func (c *Controller) complete(gen uint64, url, traceID string) {
	c.mu.Lock()
	if c.session.Generation != gen || c.session.Status != StatusLoading {
		c.mu.Unlock()
		c.logger.Debug("Dropping stale transition for generation %d (%s)", gen, traceID)
		return
	}

	c.session.Status = StatusReady
	c.session.ResultURL = url
	c.pending = nil
	snapshot, observers := c.session, c.snapshotObservers()
	c.mu.Unlock()

	c.logger.Info("Generation %d (%s) ready", gen, traceID)
	notify(observers, snapshot)
}

func (c *Controller) snapshotObservers() []Observer {
	return append([]Observer(nil), c.observers...)
}

func notify(observers []Observer, s Session) {
	for _, o := range observers {
		o(s)
	}
}
