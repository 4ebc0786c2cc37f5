package campaign

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/hierarchy"
	"github.com/KaramelBytes/surveyloom/internal/utils"
	"github.com/jinzhu/inflection"
	"gopkg.in/yaml.v3"
)

// Capabilities switches per-campaign behaviour on or off.
type Capabilities struct {
	HasAge             bool `yaml:"has_age" json:"has_age"`
	HasAgeBucket       bool `yaml:"has_age_bucket" json:"has_age_bucket"`
	HasGender          bool `yaml:"has_gender" json:"has_gender"`
	HasProfession      bool `yaml:"has_profession" json:"has_profession"`
	HasLivingSetting   bool `yaml:"has_living_setting" json:"has_living_setting"`
	RegionCentric      bool `yaml:"region_centric" json:"region_centric"`
	AgeIsBucket        bool `yaml:"age_is_bucket" json:"age_is_bucket"`
	ExtendedAgeBuckets bool `yaml:"extended_age_buckets" json:"extended_age_buckets"`
	// BreakdownLimit caps the paired breakdown lists; 0 keeps all.
	BreakdownLimit int `yaml:"breakdown_limit" json:"breakdown_limit"`
}

// Config is one campaign's YAML definition.
type Config struct {
	Code             string             `yaml:"code"`
	Name             string             `yaml:"name"`
	NounSingular     string             `yaml:"respondent_noun_singular"`
	NounPlural       string             `yaml:"respondent_noun_plural"`
	DataFile         string             `yaml:"data_file"`
	Language         string             `yaml:"language,omitempty"`
	ExtraStopwords   []string           `yaml:"extra_stopwords,omitempty"`
	Capabilities     Capabilities       `yaml:"capabilities"`
	ParentCategories []hierarchy.Parent `yaml:"parent_categories"`

	// the file this config was read from
	path string
}

// ErrMissingCode is returned for a config without a campaign code.
var ErrMissingCode = errors.New("campaign code is required")

// LoadConfig reads and validates a campaign YAML file, returning the parsed
// config and its category index.
func LoadConfig(path string) (*Config, *hierarchy.Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read campaign config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, nil, fmt.Errorf("parse campaign config %s: %w", path, err)
	}
	c.Code = strings.TrimSpace(c.Code)
	if c.Code == "" {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrMissingCode)
	}
	if c.NounSingular == "" {
		c.NounSingular = "respondent"
	}
	if c.NounPlural == "" {
		c.NounPlural = inflection.Plural(c.NounSingular)
	}
	idx, err := hierarchy.New(c.ParentCategories)
	if err != nil {
		return nil, nil, fmt.Errorf("campaign %s: %w", c.Code, err)
	}
	c.path = path
	return &c, idx, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string { return c.path }

// Save writes the config as YAML using an atomic write.
func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal campaign config: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return err
	}
	c.path = path
	return nil
}

// Scaffold returns a starter config for a new campaign.
func Scaffold(code string) *Config {
	return &Config{
		Code:         code,
		Name:         code,
		NounSingular: "respondent",
		NounPlural:   "respondents",
		DataFile:     code + ".csv",
		Language:     "en",
		Capabilities: Capabilities{
			HasAge:       true,
			HasAgeBucket: true,
			HasGender:    true,
		},
		ParentCategories: []hierarchy.Parent{{
			Code:        "OTHER",
			Description: "Other",
			SubCategories: []hierarchy.Category{
				{Code: "OTHERQUESTIONABLE", Description: "Other / questionable"},
			},
		}},
	}
}
