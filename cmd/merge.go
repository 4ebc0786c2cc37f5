package cmd

import (
	"github.com/KaramelBytes/surveyloom/internal/engine"
	"github.com/spf13/cobra"
)

var (
	mrgFilters    filterFlags
	mrgQuestion   string
	mrgOutputPath string
	mrgJSON       bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge <campaign> <campaign>...",
	Short: "Compare the same filters across several campaigns and merge the results",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f1, f2, err := mrgFilters.filters()
		if err != nil {
			return err
		}
		ss, err := newSession(args...)
		if err != nil {
			return err
		}
		defer ss.close()

		out, err := ss.svc.CompareMany(cmd.Context(), engine.ManyRequest{
			Campaigns: args,
			Question:  mrgQuestion,
			Filter1:   f1,
			Filter2:   f2,
		})
		if err != nil {
			return err
		}
		if err := writeComparison(cmd, out, mrgOutputPath, mrgJSON); err != nil {
			return err
		}
		return ss.writeMetrics()
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mrgFilters.bind(mergeCmd.Flags())
	mergeCmd.Flags().StringVarP(&mrgQuestion, "question", "q", "", "question code present in every campaign (default: each campaign's first)")
	mergeCmd.Flags().StringVarP(&mrgOutputPath, "output", "o", "", "optional path to write the merged comparison")
	mergeCmd.Flags().BoolVar(&mrgJSON, "json", false, "emit JSON instead of Markdown")
}
