package cmd

import (
	"fmt"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/engine"
	"github.com/KaramelBytes/surveyloom/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaFilters    filterFlags
	anaQuestion   string
	anaOutputPath string
	anaJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <campaign>",
	Short: "Compare a filtered subset of a campaign against all (or a second filter's) responses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f1, f2, err := anaFilters.filters()
		if err != nil {
			return err
		}
		ss, err := newSession(args[0])
		if err != nil {
			return err
		}
		defer ss.close()

		out, err := ss.svc.Compare(cmd.Context(), engine.Request{
			Campaign: args[0],
			Question: anaQuestion,
			Filter1:  f1,
			Filter2:  f2,
		})
		if err != nil {
			return err
		}
		if err := writeComparison(cmd, out, anaOutputPath, anaJSON); err != nil {
			return err
		}
		return ss.writeMetrics()
	},
}

// writeComparison renders Markdown (or JSON) to --output or stdout.
func writeComparison(cmd *cobra.Command, c *bundle.Comparison, path string, asJSON bool) error {
	var data []byte
	if asJSON {
		b, err := utils.PrettyJSON(c)
		if err != nil {
			return err
		}
		data = b
	} else {
		data = []byte(c.Markdown())
	}
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote comparison to %s\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaFilters.bind(analyzeCmd.Flags())
	analyzeCmd.Flags().StringVarP(&anaQuestion, "question", "q", "", "question code, e.g. q1 (default: first question)")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the comparison")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "emit JSON instead of Markdown")
}

