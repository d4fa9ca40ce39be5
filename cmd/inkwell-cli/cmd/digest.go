package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inkwell/internal/domain"
)

var weekly bool

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Generate the morning briefing or weekly review",
	Long: `Aggregate the recent capture window into a briefing: new notes per
category, next actions, due dates, follow-ups and stuck projects. The
daily variant covers since yesterday midnight, the weekly one since
Sunday midnight.

Examples:
  inkwell-cli digest
  inkwell-cli digest --weekly`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		variant := domain.DigestDaily
		if weekly {
			variant = domain.DigestWeekly
		}

		result, err := GetPipeline().Digest(context.Background(), variant)
		if err != nil {
			return err
		}
		fmt.Println(result.Text)
		if result.UsedFallback && !result.Data.Empty() {
			fmt.Fprintln(os.Stderr, "note: summarizer unavailable, showing the plain rendering")
		}
		return nil
	},
}

func init() {
	digestCmd.Flags().BoolVar(&weekly, "weekly", false, "generate the weekly review instead of the daily briefing")
	rootCmd.AddCommand(digestCmd)
}
