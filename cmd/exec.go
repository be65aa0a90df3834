/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sergiopachon/birdie/internal/logging"
)

// execCmd represents the exec command
var execCmd = &cobra.Command{
	Use:   "exec <tab-id> <script>",
	Short: "Run a script in a tab's execution context",
	Long: `Evaluate a JavaScript expression inside the given tab. The remote
result is printed as a string; a remote exception is reported verbatim.`,
	Args: cobra.ExactArgs(2),
	RunE: runExec,
}

var execPort int

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().IntVar(&execPort, "port", 0, "Remote debugging port (default from settings)")
}

func runExec(cmd *cobra.Command, args []string) error {
	log := logging.NewConsole("warn")
	session, _, err := connectSession(execPort, log)
	if err != nil {
		return err
	}

	res, err := session.ExecuteScript(args[0], args[1])
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("script failed: %s", res.Error)
	}
	fmt.Println(res.Result)
	return nil
}
