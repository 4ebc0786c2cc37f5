package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/surveyloom/internal/campaign"
	"github.com/spf13/cobra"
)

var (
	initName     string
	initDataFile string
)

var initCmd = &cobra.Command{
	Use:   "init <campaign-code>",
	Short: "Create a starter campaign config in the campaigns directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		dir, err := campaignsDir()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, code+".yaml")
		// Refuse to overwrite an existing campaign.
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("campaign already exists at %s", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat campaign config: %w", err)
		}
		c := campaign.Scaffold(code)
		if initName != "" {
			c.Name = initName
		}
		if initDataFile != "" {
			c.DataFile = initDataFile
		}
		if err := c.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Campaign initialized: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initName, "name", "n", "", "display name")
	initCmd.Flags().StringVarP(&initDataFile, "data", "d", "", "dataset file (CSV/TSV/XLSX), relative to the config")
}
