package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var replyKey string

var replyCmd = &cobra.Command{
	Use:   "reply <category>",
	Short: "Answer an open clarification",
	Long: `Answer the open clarification with the category the held note
belongs to. Category names may be abbreviated to a unique prefix.

Examples:
  inkwell-cli reply ideas
  inkwell-cli reply proj`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetPipeline().Reply(context.Background(), replyKey, args[0])
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	replyCmd.Flags().StringVar(&replyKey, "key", "", "correlation key (defaults to the current clarification)")
	rootCmd.AddCommand(replyCmd)
}
