package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix <category>",
	Short: "Move the last filed note to a different category",
	Long: `Move the most recently filed note to a different category. The
document is relocated and its frontmatter updated; the correction is
recorded in the audit log.

Examples:
  inkwell-cli fix people
  inkwell-cli fix admin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetPipeline().Fix(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
