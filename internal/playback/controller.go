// Package playback orchestrates notification narration. It enforces at
// most one active narration at a time and owns the auto-play-first
// policy.
package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/sergiopachon/birdie/internal/domain"
	"github.com/sergiopachon/birdie/internal/events"
	"github.com/sergiopachon/birdie/internal/logging"
	"github.com/sergiopachon/birdie/internal/queue"
	"github.com/sergiopachon/birdie/internal/speech"
)

// State is the playback state. Exactly one value exists at a time.
type State string

const (
	// StateIdle means nothing is playing and no current item is shown.
	StateIdle State = "idle"
	// StatePlaying means a narration is in flight.
	StatePlaying State = "playing"
	// StateStopped means the narration ended; the current item stays
	// visible until the queue drains or a new item is selected.
	StateStopped State = "stopped"
)

// Snapshot is a read-only view of the controller published on every
// transition.
type Snapshot struct {
	State    State
	Current  *domain.Notification
	QueueLen int
}

// Option configures the controller.
type Option func(*Controller)

// WithEstimator replaces the narration duration heuristic.
func WithEstimator(e Estimator) Option {
	return func(c *Controller) { c.estimate = e }
}

// WithLang sets the narration language passed to the narrator.
func WithLang(lang string) Option {
	return func(c *Controller) { c.lang = lang }
}

// WithHoldScheduler replaces the hold timer mechanism. Tests use this
// to fire holds deterministically.
func WithHoldScheduler(schedule func(d time.Duration, fn func())) Option {
	return func(c *Controller) { c.schedule = schedule }
}

// Controller owns the queue and the playback state machine:
// Idle -> Playing -> Stopped -> Idle, with Stop forcing Idle from any
// state. All transitions happen under one mutex; the external narrator
// calls and the hold timer run outside it.
type Controller struct {
	store    *queue.Store
	narrator speech.Narrator
	bus      *events.Bus
	log      logging.Logger
	estimate Estimator
	lang     string
	schedule func(d time.Duration, fn func())

	mu      sync.Mutex
	state   State
	current *domain.Notification
	// autoPlayArmed is a one-shot token, true only until the first
	// notification of the session arrives.
	autoPlayArmed bool
	// gen invalidates pending hold timers: a hold only completes if
	// the generation it captured is still current.
	gen uint64
}

// NewController creates a controller over the given queue and narrator.
func NewController(store *queue.Store, narrator speech.Narrator, bus *events.Bus, log logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:         store,
		narrator:      narrator,
		bus:           bus,
		log:           log,
		estimate:      DefaultEstimator(),
		lang:          "es",
		state:         StateIdle,
		autoPlayArmed: true,
	}
	c.schedule = func(d time.Duration, fn func()) {
		time.AfterFunc(d, fn)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enqueue appends a notification to the queue. The very first
// notification of the session is auto-played when nothing else is in
// progress; every later arrival just waits its turn and never
// interrupts an in-flight narration.
func (c *Controller) Enqueue(n *domain.Notification) {
	c.store.Enqueue(n)
	c.bus.Publish(events.NotificationReceived, n)

	c.mu.Lock()
	trigger := c.autoPlayArmed && c.state == StateIdle
	c.autoPlayArmed = false
	c.mu.Unlock()

	if trigger {
		c.log.Info("auto-playing first notification", "app", n.AppName)
		if err := c.PlayNext(); err != nil {
			c.log.Error("auto-play failed", "error", err)
		}
	} else {
		c.log.Debug("notification queued", "app", n.AppName, "queue_len", c.store.Len())
	}
}

// PlayNext pops the head of the queue and narrates it. It is a guarded
// no-op while a narration is in flight or when the queue is empty, so
// rapid repeated calls cannot start overlapping narrations.
func (c *Controller) PlayNext() error {
	c.mu.Lock()
	if c.state == StatePlaying {
		c.mu.Unlock()
		return domain.ErrAlreadyPlaying
	}
	next, ok := c.store.PopHead()
	if !ok {
		c.mu.Unlock()
		return domain.ErrQueueEmpty
	}
	c.current = next
	c.state = StatePlaying
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	c.publish()

	text := next.NarrationText()
	if err := c.narrator.Speak(text, c.lang); err != nil {
		// Never stay stuck in Playing when the narrator rejects.
		c.mu.Lock()
		if c.gen == gen && c.state == StatePlaying {
			c.state = StateIdle
		}
		c.mu.Unlock()
		c.publish()
		return fmt.Errorf("narration failed: %w", err)
	}

	hold := c.estimate(text)
	c.log.Debug("narration started", "app", next.AppName, "hold", hold)
	c.schedule(hold, func() { c.completeHold(gen) })
	return nil
}

// completeHold finishes a narration after its estimated duration. A
// hold scheduled before a Stop or Skip finds a newer generation and
// does nothing.
func (c *Controller) completeHold(gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.state != StatePlaying {
		c.mu.Unlock()
		return
	}
	c.state = StateStopped
	c.mu.Unlock()

	c.log.Debug("narration hold elapsed", "queue_len", c.store.Len())
	c.publish()
}

// Stop cancels any in-flight narration, clears the current item, and
// forces Idle. Safe to call repeatedly; the external stop is always
// issued and each call leaves the state at Idle.
func (c *Controller) Stop() error {
	c.mu.Lock()
	c.gen++
	c.state = StateIdle
	c.current = nil
	c.mu.Unlock()

	err := c.narrator.Stop()
	c.publish()
	if err != nil {
		return fmt.Errorf("stop narration: %w", err)
	}
	return nil
}

// Skip discards the current item and, when the queue is non-empty,
// immediately narrates the next one. The skipped item is not re-queued.
func (c *Controller) Skip() error {
	if err := c.Stop(); err != nil {
		c.log.Warn("skip: stop failed", "error", err)
	}
	if c.store.Len() == 0 {
		return nil
	}
	return c.PlayNext()
}

// Snapshot returns the current playback view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Current: c.current, QueueLen: c.store.Len()}
}

// publish emits the current snapshot on the event bus.
func (c *Controller) publish() {
	c.bus.Publish(events.PlaybackChanged, c.Snapshot())
}
