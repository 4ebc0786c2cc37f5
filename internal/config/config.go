package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const dirName = ".surveyloom"

// Global configuration structure.
type Global struct {
	CampaignsDir      string `mapstructure:"campaigns_dir" yaml:"campaigns_dir"`
	ReferenceCampaign string `mapstructure:"reference_campaign" yaml:"reference_campaign"`
	Language          string `mapstructure:"language" yaml:"language"`

	// Word list sizes
	WordcloudWords int `mapstructure:"wordcloud_words" yaml:"wordcloud_words"`
	TopWords       int `mapstructure:"top_words" yaml:"top_words"`

	// Cross-campaign fan-out
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Raw responses returned with each comparison
	ResponsesSample int `mapstructure:"responses_sample" yaml:"responses_sample"`

	// N-gram baseline cache: memory or redis
	NgramCache       string `mapstructure:"ngram_cache" yaml:"ngram_cache"`
	NgramCacheTTLSec int    `mapstructure:"ngram_cache_ttl_sec" yaml:"ngram_cache_ttl_sec"`
	RedisAddress     string `mapstructure:"redis_address" yaml:"redis_address"`
	RedisPassword    string `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB          int    `mapstructure:"redis_db" yaml:"redis_db"`

	// Coordinates of (country, region) pairs resolved so far
	CoordinatesFile string `mapstructure:"coordinates_file" yaml:"coordinates_file"`

	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// Dir returns ~/.surveyloom.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.surveyloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SURVEYLOOM")
	v.AutomaticEnv()

	v.SetDefault("campaigns_dir", "")
	v.SetDefault("reference_campaign", "")
	v.SetDefault("language", "en")
	v.SetDefault("wordcloud_words", 100)
	v.SetDefault("top_words", 20)
	v.SetDefault("workers", 4)
	v.SetDefault("responses_sample", 1000)
	v.SetDefault("ngram_cache", "memory")
	v.SetDefault("ngram_cache_ttl_sec", 0)
	v.SetDefault("redis_address", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("coordinates_file", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("metrics_file", "")

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.CampaignsDir == "" {
		c.CampaignsDir = filepath.Join(dir, "campaigns")
	}
	if c.CoordinatesFile == "" {
		c.CoordinatesFile = filepath.Join(dir, "coordinates.json")
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return &c, nil
}
