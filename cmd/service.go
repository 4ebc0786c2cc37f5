package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/surveyloom/internal/campaign"
	"github.com/KaramelBytes/surveyloom/internal/countries"
	"github.com/KaramelBytes/surveyloom/internal/engine"
	"github.com/KaramelBytes/surveyloom/internal/geo"
	"github.com/KaramelBytes/surveyloom/internal/metrics"
	"github.com/KaramelBytes/surveyloom/internal/ngram"
	"github.com/KaramelBytes/surveyloom/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// session bundles what a comparison command needs; close releases it.
type session struct {
	reg     *campaign.Registry
	svc     *engine.Service
	metrics *prometheus.Registry
	close   func()
}

func campaignsDir() (string, error) {
	return utils.ExpandHome(cfg.CampaignsDir)
}

// newRegistry loads either the named campaigns or every campaign in the directory.
func newRegistry(codes ...string) (*campaign.Registry, error) {
	dir, err := campaignsDir()
	if err != nil {
		return nil, err
	}
	reg := campaign.NewRegistry(dir, countries.Default(), log)
	if len(codes) == 0 {
		return reg, reg.LoadAll()
	}
	for _, code := range codes {
		if _, err := reg.LoadOne(code); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func newSession(codes ...string) (*session, error) {
	reg, err := newRegistry(codes...)
	if err != nil {
		return nil, err
	}

	ss := &session{reg: reg, metrics: prometheus.NewRegistry(), close: func() {}}
	m := metrics.New(ss.metrics)

	var store ngram.Store = ngram.NewMemoryStore()
	if cfg.NgramCache == "redis" {
		rs, err := ngram.NewRedisStore(ngram.RedisConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      time.Duration(cfg.NgramCacheTTLSec) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("ngram cache: %w", err)
		}
		store = rs
		ss.close = func() { _ = rs.Close() }
	}

	agg, err := newAggregator(reg)
	if err != nil {
		ss.close()
		return nil, err
	}

	ss.svc = engine.New(reg, engine.Options{
		Store:             store,
		Geo:               agg,
		Logger:            log,
		Metrics:           m,
		WordcloudWords:    cfg.WordcloudWords,
		TopWords:          cfg.TopWords,
		Workers:           cfg.Workers,
		ReferenceCampaign: cfg.ReferenceCampaign,
		ResponsesSample:   cfg.ResponsesSample,
	})
	return ss, nil
}

// newAggregator backs the geo aggregator with the configured coordinates file.
func newAggregator(reg *campaign.Registry) (*geo.Aggregator, error) {
	agg := geo.NewAggregator(reg.Countries(), log)
	if cfg.CoordinatesFile == "" {
		return agg, nil
	}
	path, err := utils.ExpandHome(cfg.CoordinatesFile)
	if err != nil {
		return nil, err
	}
	fs, err := geo.OpenFileStore(path)
	if err != nil {
		return nil, err
	}
	agg.Store = fs
	return agg, nil
}

// writeMetrics dumps the run's counters when a metrics file is configured.
func (ss *session) writeMetrics() error {
	if cfg.MetricsFile == "" {
		return nil
	}
	path, err := utils.ExpandHome(cfg.MetricsFile)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, ss.metrics); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
