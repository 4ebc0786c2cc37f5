package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List the campaigns in the campaigns directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		codes := reg.Codes()
		if len(codes) == 0 {
			fmt.Fprintln(out, "(no campaigns)")
			return nil
		}
		for _, code := range codes {
			c, _ := reg.Get(code)
			fmt.Fprintf(out, "- %s: %s (%d responses, questions %v)\n",
				code, c.Config.Name, len(c.Data.Rows), c.Data.Questions)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(campaignsCmd)
}
