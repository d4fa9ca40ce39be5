package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/application"
	"inkwell/internal/application/commands"
)

func captureMessage(result *commands.CaptureResult) string {
	if result == nil {
		return ""
	}
	return result.Message
}

var audioFile string

var captureCmd = &cobra.Command{
	Use:   "capture <text>...",
	Short: "Capture a thought into the vault",
	Long: `Capture a thought. It gets classified and filed automatically when
the classifier is confident; otherwise a clarification is opened and the
capture waits for "reply".

Inline commands are understood too: "fix: <category>" moves the last
filed note, "done: <task>" checks off a task.

Examples:
  inkwell-cli capture Call Sarah about the Q3 budget by Friday
  inkwell-cli capture "fix: people"
  inkwell-cli capture --audio memo.ogg`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if audioFile != "" {
			audio, err := os.ReadFile(audioFile)
			if err != nil {
				return fmt.Errorf("reading audio file: %w", err)
			}
			result, err := GetPipeline().CaptureVoice(ctx, audio)
			if err != nil {
				return reportPartial(captureMessage(result), err)
			}
			fmt.Printf("Heard: %s\n%s\n", result.Transcript, result.Message)
			return nil
		}

		text := strings.Join(args, " ")
		result, err := GetPipeline().Capture(ctx, text)
		if err != nil {
			return reportPartial(captureMessage(result), err)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	captureCmd.Flags().StringVar(&audioFile, "audio", "", "path to a voice memo to transcribe and capture")
	rootCmd.AddCommand(captureCmd)
}

// reportPartial prints the success message for degraded filings before
// surfacing the audit failure; the note did land in the vault.
func reportPartial(message string, err error) error {
	var partial *application.PartialFilingError
	if errors.As(err, &partial) && message != "" {
		fmt.Println(message)
		fmt.Fprintln(os.Stderr, "warning: audit log entry could not be written:", partial.Err)
		return nil
	}
	return err
}
