package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Show the open clarification, if any",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cur, err := GetPipeline().Pending()
		if err != nil {
			return err
		}
		if cur == nil {
			fmt.Println("No clarification is open.")
			return nil
		}
		fmt.Printf("Waiting for a category for %q\n", cur.Note.Title)
		fmt.Printf("  captured: %s\n", cur.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("  expires:  %s\n", cur.ExpiresAt.Format("2006-01-02 15:04"))
		fmt.Println("Answer with: inkwell-cli reply <category>")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}
