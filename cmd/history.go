/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sergiopachon/birdie/internal/history"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List narrated notifications and detected messages",
	RunE:  runHistory,
}

var (
	historyLimit      int
	historyDetections bool
	historyCleanup    int
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show")
	historyCmd.Flags().BoolVar(&historyDetections, "detections", false, "Show detected tab messages instead of narrations")
	historyCmd.Flags().IntVar(&historyCleanup, "cleanup", -1, "Remove entries older than this many days and exit")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := history.DefaultPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if historyCleanup >= 0 {
		if err := store.Cleanup(historyCleanup); err != nil {
			return err
		}
		fmt.Printf("Removed entries older than %d days.\n", historyCleanup)
		return nil
	}

	if historyDetections {
		msgs, err := store.RecentDetections(historyLimit)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Println("No detected messages recorded.")
			return nil
		}
		for _, m := range msgs {
			fmt.Printf("%s  [%s] %s — %s: %s\n", m.Timestamp, m.Source, m.TabTitle, m.Sender, m.Message)
		}
		return nil
	}

	entries, err := store.RecentNarrations(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No narrations recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s — %s: %s\n", e.NarratedAt, e.AppName, e.Sender, e.Message)
	}
	return nil
}
