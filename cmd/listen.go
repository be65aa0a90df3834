/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sergiopachon/birdie/internal/cdp"
	"github.com/sergiopachon/birdie/internal/domain"
	"github.com/sergiopachon/birdie/internal/events"
	"github.com/sergiopachon/birdie/internal/history"
	"github.com/sergiopachon/birdie/internal/logging"
	"github.com/sergiopachon/birdie/internal/playback"
	"github.com/sergiopachon/birdie/internal/queue"
	"github.com/sergiopachon/birdie/internal/settings"
	"github.com/sergiopachon/birdie/internal/speech"
	"github.com/sergiopachon/birdie/internal/tui"
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Run the assistant over a notification event stream",
	Long: `Run the notification narration assistant.

Notification events are read from stdin as newline-delimited JSON with
the fields app_name, sender, message, timestamp (RFC 3339) and an
optional app_icon. The first notification of the session auto-plays;
later arrivals queue up behind the controls.

With --monitor the Chrome DevTools monitor is started as well, polling
the configured messaging tabs for new content.`,
	RunE: runListen,
}

var (
	listenTUI       bool
	listenMonitor   bool
	listenNoHistory bool
	listenLogLevel  string
)

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().BoolVar(&listenTUI, "tui", false, "Show the interactive follow view")
	listenCmd.Flags().BoolVar(&listenMonitor, "monitor", false, "Also start DevTools tab monitoring")
	listenCmd.Flags().BoolVar(&listenNoHistory, "no-history", false, "Do not record narrations to the history database")
	listenCmd.Flags().StringVar(&listenLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func runListen(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load()
	if err != nil {
		return err
	}

	log, err := buildLogger(listenTUI, listenLogLevel)
	if err != nil {
		return err
	}
	defer log.Shutdown()

	bus := events.NewBus()
	store := queue.NewStore()
	narrator := speech.NewCommandNarrator(cfg.SpeechCommand, log)
	controller := playback.NewController(store, narrator, bus, log,
		playback.WithLang(cfg.NarrationLang),
		playback.WithEstimator(playback.NewEstimator(cfg.PerWord(), cfg.ResponseAllowance(), cfg.MinNarration())),
	)

	if !listenNoHistory {
		if err := attachHistory(bus, log); err != nil {
			log.Warn("history disabled", "error", err)
		}
	}

	if listenMonitor {
		registry := cdp.NewRegistry()
		session := cdp.NewSession(registry, log)
		if res := session.Connect(cfg.CDPPort); !res.Success {
			log.Warn("monitor unavailable", "message", res.Message, "help", res.ErrorHelpURL)
		} else {
			monitor := cdp.NewMonitor(session, registry, bus, log)
			if _, err := monitor.Start(cfg.MonitorInterval()); err != nil {
				log.Warn("monitor failed to start", "error", err)
			} else {
				defer monitor.Stop()
			}
		}
	}

	go readEvents(os.Stdin, controller, log)

	if listenTUI {
		return runFollowView(controller, store, bus)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	log.Info("listening for notifications", "lang", cfg.NarrationLang)
	<-ctx.Done()
	return controller.Stop()
}

// buildLogger writes to stderr normally, and to the log file when the
// TUI owns the terminal.
func buildLogger(tuiActive bool, level string) (logging.Logger, error) {
	if !tuiActive {
		return logging.NewConsole(level), nil
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	return logging.Init(cfg)
}

// readEvents feeds NDJSON notification events into the controller.
func readEvents(r io.Reader, controller *playback.Controller, log logging.Logger) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		ev, err := domain.ParseNotificationEvent(line)
		if err != nil {
			log.Warn("dropping malformed event", "error", err)
			continue
		}
		n, err := domain.NewNotification(ev)
		if err != nil {
			log.Warn("dropping invalid notification", "error", err)
			continue
		}
		controller.Enqueue(n)
	}
	if err := scanner.Err(); err != nil {
		log.Error("event stream failed", "error", err)
	}
}

// attachHistory records narrated notifications and detected messages.
func attachHistory(bus *events.Bus, log logging.Logger) error {
	path, err := history.DefaultPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	bus.Subscribe(events.PlaybackChanged, func(payload any) {
		snap, ok := payload.(playback.Snapshot)
		if !ok || snap.State != playback.StatePlaying || snap.Current == nil {
			return
		}
		if err := store.RecordNarration(snap.Current); err != nil {
			log.Warn("history write failed", "error", err)
		}
	})
	bus.Subscribe(events.CDPMessageDetected, func(payload any) {
		msg, ok := payload.(domain.DetectedMessage)
		if !ok {
			return
		}
		if err := store.RecordDetection(msg); err != nil {
			log.Warn("history write failed", "error", err)
		}
	})
	return nil
}

// runFollowView wires the bus into the bubbletea program and blocks
// until the user quits.
func runFollowView(controller *playback.Controller, store *queue.Store, bus *events.Bus) error {
	program := tea.NewProgram(tui.New(controller), tea.WithAltScreen())

	bus.Subscribe(events.PlaybackChanged, func(payload any) {
		if snap, ok := payload.(playback.Snapshot); ok {
			program.Send(tui.SnapshotMsg(snap))
			program.Send(tui.QueueMsg(store.PeekAll()))
		}
	})
	bus.Subscribe(events.NotificationReceived, func(payload any) {
		program.Send(tui.QueueMsg(store.PeekAll()))
	})
	bus.Subscribe(events.CDPMessageDetected, func(payload any) {
		if msg, ok := payload.(domain.DetectedMessage); ok {
			program.Send(tui.DetectedMsg(msg))
		}
	})

	_, err := program.Run()
	if err != nil {
		return fmt.Errorf("follow view failed: %w", err)
	}
	return controller.Stop()
}
