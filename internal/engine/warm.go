package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/KaramelBytes/surveyloom/internal/logger"
	"github.com/KaramelBytes/surveyloom/internal/ngram"
)

// Warm computes and stores the unfiltered n-gram baseline of every question of
// the given campaigns (all loaded campaigns when none are named).
func (s *Service) Warm(ctx context.Context, codes ...string) error {
	if len(codes) == 0 {
		codes = s.reg.Codes()
	}
	for _, code := range codes {
		c, ok := s.reg.Get(code)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCampaign, code)
		}
		start := time.Now()
		stop := ngram.NewStopwords(s.language(c), c.Config.ExtraStopwords...)
		for _, q := range c.Data.Questions {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, _ := c.Data.Question(q)
			key := ngram.BaselineKey{Campaign: code, Version: c.Data.Version, Question: q}
			_, hit, err := ngram.Baseline(ctx, s.opts.Store, key, func() ngram.Counts {
				return ngram.Generate(rows, stop, ngram.Options{})
			})
			if err != nil {
				return fmt.Errorf("warm %s: %w", code, err)
			}
			s.opts.Metrics.ObserveBaseline(hit)
		}
		s.log.Info("baselines warmed",
			logger.String("campaign", code),
			logger.Int("questions", len(c.Data.Questions)),
			logger.Duration("took", time.Since(start)))
	}
	return nil
}
