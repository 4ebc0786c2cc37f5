// Package campaign loads campaign definitions and their datasets.
package campaign

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/surveyloom/internal/countries"
	"github.com/KaramelBytes/surveyloom/internal/dataset"
	"github.com/KaramelBytes/surveyloom/internal/describe"
	"github.com/KaramelBytes/surveyloom/internal/hierarchy"
	"github.com/KaramelBytes/surveyloom/internal/utils"
)

// Campaign is a loaded campaign: its config, category index and dataset.
type Campaign struct {
	Config *Config
	Index  *hierarchy.Index
	Data   *dataset.Dataset
}

// Code returns the campaign code.
func (c *Campaign) Code() string { return c.Config.Code }

// Nouns returns the respondent nouns used in filter descriptions.
func (c *Campaign) Nouns() describe.Nouns {
	return describe.Nouns{Singular: c.Config.NounSingular, Plural: c.Config.NounPlural}
}

// Load reads a campaign config and the dataset it points to. A relative
// data_file is resolved against the config's directory.
func Load(cfgPath string, tbl *countries.Table) (*Campaign, error) {
	cfg, idx, err := LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	if cfg.DataFile == "" {
		return nil, fmt.Errorf("campaign %s: data_file is required", cfg.Code)
	}
	dataPath, err := utils.ResolveRelative(filepath.Dir(cfgPath), cfg.DataFile)
	if err != nil {
		return nil, err
	}
	t, err := dataset.LoadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", cfg.Code, err)
	}
	t.Name = cfg.Code
	data, err := dataset.Build(t, dataset.BuildOptions{
		Index:              idx,
		Countries:          tbl,
		AgeIsBucket:        cfg.Capabilities.AgeIsBucket,
		ExtendedAgeBuckets: cfg.Capabilities.ExtendedAgeBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", cfg.Code, err)
	}
	return &Campaign{Config: cfg, Index: idx, Data: data}, nil
}
