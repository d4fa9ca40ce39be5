package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <task>...",
	Short: "Check off a task in the vault",
	Long: `Check off the first open task matching the given text. When no
single task matches, a note matched by title or content is marked done
as a whole.

Examples:
  inkwell-cli done call sarah
  inkwell-cli done renew passport`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetPipeline().Done(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
