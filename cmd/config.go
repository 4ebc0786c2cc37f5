package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/surveyloom/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set surveyloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "campaigns_dir: %s\n", cfg.CampaignsDir)
		if cfg.ReferenceCampaign != "" {
			fmt.Fprintf(out, "reference_campaign: %s\n", cfg.ReferenceCampaign)
		}
		fmt.Fprintf(out, "language: %s\n", cfg.Language)
		fmt.Fprintf(out, "wordcloud_words: %d\n", cfg.WordcloudWords)
		fmt.Fprintf(out, "top_words: %d\n", cfg.TopWords)
		fmt.Fprintf(out, "workers: %d\n", cfg.Workers)
		fmt.Fprintf(out, "responses_sample: %d\n", cfg.ResponsesSample)
		fmt.Fprintf(out, "ngram_cache: %s\n", cfg.NgramCache)
		if cfg.NgramCache == "redis" {
			fmt.Fprintf(out, "redis_address: %s\n", cfg.RedisAddress)
			fmt.Fprintf(out, "redis_password: %s\n", mask(cfg.RedisPassword))
			fmt.Fprintf(out, "redis_db: %d\n", cfg.RedisDB)
			fmt.Fprintf(out, "ngram_cache_ttl_sec: %d\n", cfg.NgramCacheTTLSec)
		}
		fmt.Fprintf(out, "coordinates_file: %s\n", cfg.CoordinatesFile)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		if cfg.MetricsFile != "" {
			fmt.Fprintf(out, "metrics_file: %s\n", cfg.MetricsFile)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		atoi := func(min int) (int, error) {
			i, err := strconv.Atoi(val)
			if err != nil || i < min {
				return 0, fmt.Errorf("invalid int for %s: %v", key, val)
			}
			return i, nil
		}
		var err error
		switch key {
		case "campaigns_dir":
			cfg.CampaignsDir = val
		case "reference_campaign":
			cfg.ReferenceCampaign = val
		case "language":
			cfg.Language = val
		case "wordcloud_words":
			cfg.WordcloudWords, err = atoi(1)
		case "top_words":
			cfg.TopWords, err = atoi(1)
		case "workers":
			cfg.Workers, err = atoi(1)
		case "responses_sample":
			cfg.ResponsesSample, err = atoi(1)
		case "ngram_cache":
			switch val {
			case "memory", "redis":
				cfg.NgramCache = val
			default:
				return fmt.Errorf("invalid ngram_cache: %s (use memory or redis)", val)
			}
		case "ngram_cache_ttl_sec":
			cfg.NgramCacheTTLSec, err = atoi(0)
		case "redis_address":
			cfg.RedisAddress = val
		case "redis_password":
			cfg.RedisPassword = val
		case "redis_db":
			cfg.RedisDB, err = atoi(0)
		case "coordinates_file":
			cfg.CoordinatesFile = val
		case "log_level":
			cfg.LogLevel = val
		case "metrics_file":
			cfg.MetricsFile = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
