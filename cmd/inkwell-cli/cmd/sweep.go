package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Abandon expired clarifications",
	Long: `Remove clarifications whose answer window has passed. Each one is
recorded in the audit log as abandoned; running sweep with nothing
expired is a no-op. Suitable for cron.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetPipeline().Sweep(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
