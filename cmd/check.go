package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thebestsalad/portfolio/internal/content"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the content and config self-checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		results := content.Default().Check(cfg)
		out := cmd.OutOrStdout()
		for _, r := range results {
			mark := "✅"
			if !r.Pass {
				mark = "❌"
			}
			fmt.Fprintf(out, "%s %s\n", mark, r.Name)
		}
		if !content.Passed(results) {
			return errors.New("self-checks failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
