/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sergiopachon/birdie/internal/cdp"
	"github.com/sergiopachon/birdie/internal/logging"
	"github.com/sergiopachon/birdie/internal/settings"
)

// tabsCmd represents the tabs command
var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "Connect to Chrome and list debuggable tabs",
	Long: `Connect to the Chrome remote debugging endpoint and list the open
tabs. Tabs on supported messaging sites are marked as monitored.

Chrome must be started with --remote-debugging-port (default 9222).`,
	RunE: runTabs,
}

var tabsPort int

func init() {
	rootCmd.AddCommand(tabsCmd)

	tabsCmd.Flags().IntVar(&tabsPort, "port", 0, "Remote debugging port (default from settings)")
}

// connectSession connects a fresh session using the flag or settings
// port and returns it, or an error carrying the recorded message and
// help link.
func connectSession(port int, log logging.Logger) (*cdp.Session, *cdp.Registry, error) {
	cfg, err := settings.Load()
	if err != nil {
		return nil, nil, err
	}
	if port == 0 {
		port = cfg.CDPPort
	}
	if port < settings.MinPort || port > settings.MaxPort {
		fmt.Printf("warning: port %d is outside the usual range %d-%d\n", port, settings.MinPort, settings.MaxPort)
	}

	registry := cdp.NewRegistry()
	session := cdp.NewSession(registry, log)
	res := session.Connect(port)
	if !res.Success {
		if res.ErrorHelpURL != "" {
			return nil, nil, fmt.Errorf("%s\nSee %s", res.Message, res.ErrorHelpURL)
		}
		return nil, nil, fmt.Errorf("%s", res.Message)
	}
	return session, registry, nil
}

func runTabs(cmd *cobra.Command, args []string) error {
	log := logging.NewConsole("warn")
	_, registry, err := connectSession(tabsPort, log)
	if err != nil {
		return err
	}

	tabs := registry.All()
	if len(tabs) == 0 {
		fmt.Println("No open tabs found.")
		return nil
	}
	for _, t := range tabs {
		marker := " "
		if t.HasSelector {
			marker = "*"
		}
		fmt.Printf("%s %-24s %-40s %s\n", marker, t.ID, truncateCell(t.Title, 40), t.Domain)
	}
	fmt.Printf("\n%d tabs (* = monitored site)\n", len(tabs))
	return nil
}

// truncateCell shortens a value for column display.
func truncateCell(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
