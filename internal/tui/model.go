// Package tui renders the live follow view for the listen command: the
// current notification, the pending queue, and the latest detected tab
// messages.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergiopachon/birdie/internal/domain"
	"github.com/sergiopachon/birdie/internal/playback"
)

// SnapshotMsg carries a playback state change into the model.
type SnapshotMsg playback.Snapshot

// QueueMsg carries a fresh queue snapshot into the model.
type QueueMsg []*domain.Notification

// DetectedMsg carries a newly detected tab message into the model.
type DetectedMsg domain.DetectedMessage

// maxRecentMessages bounds the detected-message pane.
const maxRecentMessages = 10

type keyMap struct {
	Play key.Binding
	Stop key.Binding
	Skip key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		Stop: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Skip: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	playStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1)
)

// Controls is the slice of the playback controller the view drives.
type Controls interface {
	PlayNext() error
	Stop() error
	Skip() error
	Snapshot() playback.Snapshot
}

// Model is the bubbletea model for the follow view.
type Model struct {
	controls Controls
	keys     keyMap

	snapshot playback.Snapshot
	queued   []*domain.Notification
	detected []domain.DetectedMessage
	width    int
	err      error
}

// New creates the follow view over the given playback controls.
func New(controls Controls) Model {
	return Model{
		controls: controls,
		keys:     defaultKeyMap(),
		snapshot: controls.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case SnapshotMsg:
		m.snapshot = playback.Snapshot(msg)
	case QueueMsg:
		m.queued = msg
	case DetectedMsg:
		m.detected = append([]domain.DetectedMessage{domain.DetectedMessage(msg)}, m.detected...)
		if len(m.detected) > maxRecentMessages {
			m.detected = m.detected[:maxRecentMessages]
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Play):
			m.err = m.controls.PlayNext()
		case key.Matches(msg, m.keys.Stop):
			m.err = m.controls.Stop()
		case key.Matches(msg, m.keys.Skip):
			m.err = m.controls.Skip()
		}
		m.snapshot = m.controls.Snapshot()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🐦 Birdie — Asistente de Notificaciones"))
	b.WriteString("\n\n")
	b.WriteString(m.currentView())
	b.WriteString("\n")
	b.WriteString(m.queueView())
	if len(m.detected) > 0 {
		b.WriteString("\n")
		b.WriteString(m.detectedView())
	}
	if m.err != nil && !isGuardError(m.err) {
		b.WriteString("\n" + dimStyle.Render("error: "+m.err.Error()))
	}
	b.WriteString(helpStyle.Render("\np play · s stop · n skip · q quit"))
	return b.String()
}

func (m Model) currentView() string {
	cur := m.snapshot.Current
	if cur == nil {
		return boxStyle.Render(dimStyle.Render("Sin notificación actual"))
	}
	status := dimStyle.Render("■ detenido")
	if m.snapshot.State == playback.StatePlaying {
		status = playStyle.Render("▶ reproduciendo")
	}
	body := fmt.Sprintf("%s — %s\n%s\n%s", cur.AppName, cur.Sender, cur.Message, status)
	return boxStyle.Render(body)
}

func (m Model) queueView() string {
	if len(m.queued) == 0 {
		return dimStyle.Render("Cola vacía")
	}
	var lines []string
	lines = append(lines, titleStyle.Render(fmt.Sprintf("Cola (%d)", len(m.queued))))
	for i, n := range m.queued {
		lines = append(lines, fmt.Sprintf("%2d. %s — %s: %s", i+1, n.AppName, n.Sender, truncate(n.Message, 60)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) detectedView() string {
	var lines []string
	lines = append(lines, titleStyle.Render("Mensajes detectados"))
	for _, msg := range m.detected {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", msg.Source, msg.Sender, truncate(msg.Message, 60)))
	}
	return strings.Join(lines, "\n")
}

// isGuardError hides the expected no-op guards from the error line.
func isGuardError(err error) bool {
	return errors.Is(err, domain.ErrQueueEmpty) || errors.Is(err, domain.ErrAlreadyPlaying)
}

// truncate shortens a string for single-line display.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
