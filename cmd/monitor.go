/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sergiopachon/birdie/internal/cdp"
	"github.com/sergiopachon/birdie/internal/domain"
	"github.com/sergiopachon/birdie/internal/events"
	"github.com/sergiopachon/birdie/internal/logging"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch messaging tabs for new messages",
	Long: `Poll the monitored tabs (open tabs on supported messaging sites) and
print each newly detected message. Runs until interrupted.`,
	RunE: runMonitor,
}

var (
	monitorPort       int
	monitorIntervalMs int64
)

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().IntVar(&monitorPort, "port", 0, "Remote debugging port (default from settings)")
	monitorCmd.Flags().Int64Var(&monitorIntervalMs, "interval", 2000, "Polling interval in milliseconds (500-10000)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	log := logging.NewConsole("info")
	session, registry, err := connectSession(monitorPort, log)
	if err != nil {
		return err
	}

	bus := events.NewBus()
	bus.Subscribe(events.CDPMessageDetected, func(payload any) {
		msg, ok := payload.(domain.DetectedMessage)
		if !ok {
			return
		}
		fmt.Printf("[%s] %s — %s: %s\n", msg.Source, msg.TabTitle, msg.Sender, msg.Message)
	})

	monitor := cdp.NewMonitor(session, registry, bus, log)
	status, err := monitor.Start(time.Duration(monitorIntervalMs) * time.Millisecond)
	if err != nil {
		return err
	}
	fmt.Printf("Monitoring %d tabs every %dms. Press Ctrl+C to stop.\n", status.TabsMonitored, status.IntervalMs)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()

	monitor.Stop()
	return nil
}
