package engine

import (
	"github.com/KaramelBytes/surveyloom/internal/breakdown"
	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/campaign"
	"github.com/KaramelBytes/surveyloom/internal/ngram"
)

// histogramKeep caps the long-tailed histograms to their largest entries.
const histogramKeep = 20

var histogramOrder = map[string]breakdown.Order{
	bundle.HistAges:       breakdown.ByFirstNumber,
	bundle.HistAgeBuckets: breakdown.ByFirstNumber,
	bundle.HistGenders:    breakdown.ByCount,
	bundle.HistProfession: breakdown.ByCountAsc,
	bundle.HistCountries:  breakdown.ByCountAsc,
}

func (s *Service) pair(c *campaign.Campaign, q string, b1, b2 *bundle.Bundle) *bundle.Comparison {
	limit := c.Config.Capabilities.BreakdownLimit
	k := max(s.opts.WordcloudWords, s.opts.TopWords)

	unigrams := ngram.Top(b1.Unigrams, b2.Unigrams, k)

	out := &bundle.Comparison{
		Campaigns:         []string{c.Code()},
		Question:          q,
		RespondentsCount1: b1.RespondentsCount,
		RespondentsCount2: b2.RespondentsCount,
		Description1:      b1.Description,
		Description2:      b2.Description,

		ParentCategories: breakdown.Limit(breakdown.Pair(b1.ParentCategories, b2.ParentCategories), limit),
		SubCategories:    breakdown.Limit(breakdown.Pair(b1.SubCategories, b2.SubCategories), limit),

		WordcloudWords:   ngram.Head(unigrams, s.opts.WordcloudWords),
		TopWords:         ngram.Head(unigrams, s.opts.TopWords),
		TwoWordPhrases:   ngram.Head(ngram.Top(b1.Bigrams, b2.Bigrams, k), s.opts.TopWords),
		ThreeWordPhrases: ngram.Head(ngram.Top(b1.Trigrams, b2.Trigrams, k), s.opts.TopWords),

		Coordinates1: append([]bundle.Location{}, b1.Coordinates...),
		Coordinates2: append([]bundle.Location{}, b2.Coordinates...),

		Ages1:             b1.Ages,
		Ages2:             b2.Ages,
		AgeBuckets1:       b1.AgeBuckets,
		AgeBuckets2:       b2.AgeBuckets,
		AverageAge1:       b1.AverageAge,
		AverageAge2:       b2.AverageAge,
		AverageAgeBucket1: b1.AverageAgeBucket,
		AverageAgeBucket2: b2.AverageAgeBucket,

		Histogram:      map[string][]bundle.NamePair{},
		LivingSettings: breakdown.PairNames(b1.LivingSettings, b2.LivingSettings, breakdown.ByCount, 0),
	}
	for key, v1 := range b1.Histogram {
		order := histogramOrder[key]
		keep := 0
		if order == breakdown.ByCountAsc {
			keep = histogramKeep
		}
		out.Histogram[key] = breakdown.PairNames(v1, b2.Histogram[key], order, keep)
	}
	return out
}
