/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/sergiopachon/birdie/internal/settings"
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the effective configuration",
	Long: `Print the effective settings as TOML. With --init, write the current
settings (defaults merged with any existing file) back to disk so they
can be edited.`,
	RunE: runSettings,
}

var settingsInit bool

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().BoolVar(&settingsInit, "init", false, "Write the settings file with current values")
}

func runSettings(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load()
	if err != nil {
		return err
	}
	path, err := settings.Path()
	if err != nil {
		return err
	}

	if settingsInit {
		if err := settings.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Settings written to %s\n", path)
		return nil
	}

	// Never print the credential itself.
	display := cfg
	if display.SttAPIKey != "" {
		display.SttAPIKey = "(set)"
	}
	data, err := toml.Marshal(display)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	fmt.Printf("# %s\n%s", path, data)
	return nil
}
