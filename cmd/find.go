/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sergiopachon/birdie/internal/logging"
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <title>",
	Short: "Find a tab by title substring",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

var findPort int

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().IntVar(&findPort, "port", 0, "Remote debugging port (default from settings)")
}

func runFind(cmd *cobra.Command, args []string) error {
	log := logging.NewConsole("warn")
	session, _, err := connectSession(findPort, log)
	if err != nil {
		return err
	}

	tab, err := session.FindTab(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\t%s\n", tab.ID, tab.Title, tab.URL)
	return nil
}
