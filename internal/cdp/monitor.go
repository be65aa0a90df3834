package cdp

import (
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/sergiopachon/birdie/internal/domain"
	"github.com/sergiopachon/birdie/internal/events"
	"github.com/sergiopachon/birdie/internal/logging"
)

// Interval bounds and message cache size for the monitor loop.
const (
	MinInterval = 500 * time.Millisecond
	MaxInterval = 10 * time.Second
	// MessageCacheSize bounds the detected-message ring buffer.
	MessageCacheSize = 10
)

// MonitorStatus describes the monitoring session.
type MonitorStatus struct {
	IsMonitoring  bool  `json:"is_monitoring"`
	TabsMonitored int   `json:"tabs_monitored"`
	IntervalMs    int64 `json:"interval_ms"`
}

// scriptSession is the slice of Session the monitor needs.
type scriptSession interface {
	State() ConnState
	ExecuteScript(tabID, script string) (ScriptResult, error)
}

// Monitor polls the monitored tabs for new chat content and emits one
// DetectedMessage per newly observed item. Exactly one polling loop is
// active at a time: starting again restarts the loop instead of
// stacking a second one.
//
// The monitored tab set is captured when the loop starts; tabs
// configured afterward are picked up on the next restart, not
// retroactively.
type Monitor struct {
	session  scriptSession
	registry *Registry
	bus      *events.Bus
	log      logging.Logger

	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	interval time.Duration
	tabs     int
	messages *messageRing[domain.DetectedMessage]
}

// NewMonitor creates an inactive monitor over the given session and
// tab registry.
func NewMonitor(session scriptSession, registry *Registry, bus *events.Bus, log logging.Logger) *Monitor {
	return &Monitor{
		session:  session,
		registry: registry,
		bus:      bus,
		log:      log,
		messages: newMessageRing[domain.DetectedMessage](MessageCacheSize),
	}
}

// Start begins polling the registry's monitored subset at the given
// interval. The interval is clamped to the documented 500ms–10s bound.
// A running loop is stopped first, so repeated Start calls never run
// two loops concurrently.
func (m *Monitor) Start(interval time.Duration) (MonitorStatus, error) {
	if m.session.State() != StateConnected {
		return MonitorStatus{}, domain.ErrNotConnected
	}
	tabs := m.registry.MonitoredSubset()
	if interval < MinInterval {
		interval = MinInterval
	}
	if interval > MaxInterval {
		interval = MaxInterval
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()

	ring := newMessageRing[domain.DetectedMessage](MessageCacheSize)
	stop := make(chan struct{})
	done := make(chan struct{})
	m.stop = stop
	m.done = done
	m.interval = interval
	m.tabs = len(tabs)
	m.messages = ring

	go m.run(tabs, interval, ring, stop, done)

	m.log.Info("monitoring started", "tabs", len(tabs), "interval", interval)
	return MonitorStatus{IsMonitoring: true, TabsMonitored: len(tabs), IntervalMs: interval.Milliseconds()}, nil
}

// Stop cancels the loop and clears the monitoring session. When Stop
// returns the loop has exited and no further messages will be emitted
// from it.
func (m *Monitor) Stop() MonitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	m.tabs = 0
	m.interval = 0
	m.messages = newMessageRing[domain.DetectedMessage](MessageCacheSize)
	m.log.Info("monitoring stopped")
	return MonitorStatus{}
}

// stopLocked cancels a running loop and waits for it to exit. Caller
// holds m.mu.
func (m *Monitor) stopLocked() {
	if m.stop == nil {
		return
	}
	close(m.stop)
	<-m.done
	m.stop = nil
	m.done = nil
}

// Status returns the current monitoring status.
func (m *Monitor) Status() MonitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MonitorStatus{
		IsMonitoring:  m.stop != nil,
		TabsMonitored: m.tabs,
		IntervalMs:    m.interval.Milliseconds(),
	}
}

// Messages returns the cached detections, newest first.
func (m *Monitor) Messages() []domain.DetectedMessage {
	m.mu.Lock()
	ring := m.messages
	m.mu.Unlock()
	return ring.Snapshot()
}

// run is the polling loop. It owns its tab snapshot and last-seen map;
// nothing else mutates them.
func (m *Monitor) run(tabs []domain.Tab, interval time.Duration, ring *messageRing[domain.DetectedMessage], stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastSeen := make(map[string]uint64, len(tabs))
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		for _, tab := range tabs {
			select {
			case <-stop:
				return
			default:
			}
			m.poll(tab, lastSeen, ring)
		}
	}
}

// poll samples one tab. A failure here is logged and isolated: it
// neither aborts the other tabs nor stops the loop.
func (m *Monitor) poll(tab domain.Tab, lastSeen map[string]uint64, ring *messageRing[domain.DetectedMessage]) {
	cfg, ok := SelectorFor(tab.Domain)
	if !ok {
		return
	}

	res, err := m.session.ExecuteScript(tab.ID, contentScript(cfg))
	if err != nil {
		m.log.Warn("monitor: tab poll failed", "tab", tab.ID, "domain", tab.Domain, "error", err)
		return
	}
	if !res.Success {
		m.log.Warn("monitor: content script rejected", "tab", tab.ID, "error", res.Error)
		return
	}
	content := strings.TrimSpace(res.Result)
	if content == "" {
		return
	}

	h := hashContent(content)
	prev, seen := lastSeen[tab.ID]
	lastSeen[tab.ID] = h
	if !seen {
		// First sample is the baseline; only changes after it count
		// as new messages.
		return
	}
	if prev == h {
		return
	}

	msg := domain.DetectedMessage{
		TabID:     tab.ID,
		TabTitle:  tab.Title,
		Domain:    tab.Domain,
		Sender:    m.readSender(tab, cfg),
		Message:   lastLine(content),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Source:    cfg.SourceName,
	}
	ring.Push(msg)
	m.bus.Publish(events.CDPMessageDetected, msg)
	m.log.Info("monitor: message detected", "source", msg.Source, "tab", tab.ID)
}

// readSender fetches the latest sender label when the platform has a
// sender selector. Best effort only.
func (m *Monitor) readSender(tab domain.Tab, cfg SelectorConfig) string {
	script := senderScript(cfg)
	if script == "" {
		return ""
	}
	res, err := m.session.ExecuteScript(tab.ID, script)
	if err != nil || !res.Success {
		return ""
	}
	return strings.TrimSpace(res.Result)
}

// hashContent produces the change-detection identity for sampled text.
func hashContent(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// lastLine returns the final non-empty line, the newest message in the
// sampled content.
func lastLine(content string) string {
	lines := strings.Split(content, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return content
}
