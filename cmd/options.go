package cmd

import (
	"fmt"

	"github.com/KaramelBytes/surveyloom/internal/campaign"
	"github.com/KaramelBytes/surveyloom/internal/utils"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options <campaign>",
	Short: "Print the filter values available for a campaign (JSON)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry(args[0])
		if err != nil {
			return err
		}
		c, ok := reg.Get(args[0])
		if !ok {
			return fmt.Errorf("campaign %s: config code does not match file name", args[0])
		}
		b, err := utils.PrettyJSON(campaign.Options(c))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}
