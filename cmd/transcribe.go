/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sergiopachon/birdie/internal/logging"
	"github.com/sergiopachon/birdie/internal/settings"
	"github.com/sergiopachon/birdie/internal/stt"
)

// transcribeCmd represents the transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a voice recording",
	Long: `Send a recorded audio file (WebM/Opus, 48kHz) to the Google Cloud
Speech-to-Text API and print the transcript. The transcript is also
copied to the clipboard unless --no-clipboard is given.

Requires the stt_api_key setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

var transcribeNoClipboard bool

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().BoolVar(&transcribeNoClipboard, "no-clipboard", false, "Do not copy the transcript to the clipboard")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load()
	if err != nil {
		return err
	}
	audio, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read audio file: %w", err)
	}

	client := stt.NewClient(logging.NewConsole("warn"))
	res := client.Transcribe(audio, cfg.SttAPIKey, cfg.SttLanguageCode)
	if !res.Success {
		return fmt.Errorf("transcription failed: %s", res.Error)
	}

	fmt.Println(res.Text)
	if !transcribeNoClipboard {
		if err := stt.CopyToClipboard(res.Text); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	return nil
}
