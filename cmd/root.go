package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/surveyloom/internal/config"
	"github.com/KaramelBytes/surveyloom/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	log logger.Logger = logger.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "surveyloom",
	Short: "surveyloom: filter, compare and merge survey campaign responses",
	Long: `surveyloom loads campaign datasets, applies two respondent filters side by side and reports
category breakdowns, top words and phrases, geographic distribution and demographics, for one
campaign or merged across several.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.surveyloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	l, err := logger.New(logger.Config{Level: level, Development: debug})
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: logger disabled: %v\n", err)
		return nil
	}
	log = l
	return nil
}
