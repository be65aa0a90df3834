package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sergiopachon/birdie/internal/events"
	"github.com/sergiopachon/birdie/internal/logging"
	"github.com/sergiopachon/birdie/internal/playback"
	"github.com/sergiopachon/birdie/internal/queue"
	"github.com/sergiopachon/birdie/internal/speech"
)

func newStreamController() (*playback.Controller, *queue.Store) {
	store := queue.NewStore()
	c := playback.NewController(store, speech.NoopNarrator{}, events.NewBus(), logging.Noop(),
		playback.WithHoldScheduler(func(time.Duration, func()) {}))
	return c, store
}

func TestReadEventsFeedsController(t *testing.T) {
	c, store := newStreamController()
	input := strings.Join([]string{
		`{"app_name":"WhatsApp","sender":"Ana","message":"hola","timestamp":"2025-06-15T10:30:00Z"}`,
		`{"app_name":"Telegram","sender":"Luis","message":"adiós","timestamp":"2025-06-15T10:31:00Z"}`,
	}, "\n")

	readEvents(strings.NewReader(input), c, logging.Noop())

	// First event auto-played; second remains queued.
	snap := c.Snapshot()
	assert.Equal(t, playback.StatePlaying, snap.State)
	assert.Equal(t, "WhatsApp", snap.Current.AppName)
	assert.Equal(t, 1, store.Len())
}

func TestReadEventsSkipsMalformedLines(t *testing.T) {
	c, store := newStreamController()
	input := strings.Join([]string{
		`not json at all`,
		``,
		`{"app_name":"","message":"sin app","timestamp":"2025-06-15T10:30:00Z"}`,
		`{"app_name":"Signal","sender":"Eva","message":"válido","timestamp":"2025-06-15T10:30:00Z"}`,
	}, "\n")

	readEvents(strings.NewReader(input), c, logging.Noop())

	snap := c.Snapshot()
	assert.Equal(t, playback.StatePlaying, snap.State)
	assert.Equal(t, "Signal", snap.Current.AppName)
	assert.Equal(t, 0, store.Len())
}
