package engine

import (
	"context"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/filter"
	"github.com/KaramelBytes/surveyloom/internal/merge"
	"golang.org/x/sync/errgroup"
)

// ManyRequest asks for a merged comparison over several campaigns.
type ManyRequest struct {
	Campaigns []string
	Question  string
	Filter1   *filter.Filter
	Filter2   *filter.Filter
	Translate func(string) string
}

// CompareMany computes each campaign's comparison concurrently, bounded by the
// configured workers, and merges them once all have finished. The first error
// cancels the remaining work.
func (s *Service) CompareMany(ctx context.Context, req ManyRequest) (*bundle.Comparison, error) {
	results := make([]*bundle.Comparison, len(req.Campaigns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, code := range req.Campaigns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := s.Compare(gctx, Request{
				Campaign: code,
				Question: req.Question,
				Filter1:  req.Filter1,
				Filter2:  req.Filter2,
			})
			if err != nil {
				return err
			}
			results[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ref := s.opts.ReferenceCampaign
	if ref == "" && len(req.Campaigns) > 0 {
		ref = req.Campaigns[0]
	}
	out := merge.Merge(results, merge.Options{
		ReferenceCampaign: ref,
		TopWords:          s.opts.TopWords,
		WordcloudWords:    s.opts.WordcloudWords,
		ResponsesSample:   s.opts.ResponsesSample,
		Rand:              s.opts.Rand(),
	})
	if req.Translate != nil {
		out.Translate(req.Translate)
	}
	return out, nil
}
