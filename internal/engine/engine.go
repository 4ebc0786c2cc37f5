// Package engine answers comparison requests: it filters a campaign's responses
// twice and assembles the paired breakdowns, word lists, maps and demographics.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/KaramelBytes/surveyloom/internal/breakdown"
	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/campaign"
	"github.com/KaramelBytes/surveyloom/internal/dataset"
	"github.com/KaramelBytes/surveyloom/internal/describe"
	"github.com/KaramelBytes/surveyloom/internal/filter"
	"github.com/KaramelBytes/surveyloom/internal/geo"
	"github.com/KaramelBytes/surveyloom/internal/logger"
	"github.com/KaramelBytes/surveyloom/internal/metrics"
	"github.com/KaramelBytes/surveyloom/internal/ngram"
)

var (
	// ErrUnknownCampaign is returned for a campaign code the registry has not loaded.
	ErrUnknownCampaign = errors.New("unknown campaign")
	// ErrUnknownQuestion is returned for a question the campaign's dataset lacks.
	ErrUnknownQuestion = errors.New("unknown question")
)

const (
	defaultWordcloudWords = 100
	defaultTopWords       = 20
)

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	Store             ngram.Store
	Geo               *geo.Aggregator
	Logger            logger.Logger
	Metrics           *metrics.Metrics
	WordcloudWords    int
	TopWords          int
	Workers           int
	ReferenceCampaign string

	// ResponsesSample is the number of raw responses returned per comparison.
	ResponsesSample int
	// Rand is called once per comparison and must return a generator owned by
	// that call. Defaults to a time-seeded generator.
	Rand            func() *rand.Rand
}

// Service computes comparisons over the campaigns of a registry.
type Service struct {
	reg  *campaign.Registry
	opts Options
	log  logger.Logger
}

// New builds a Service. A geo aggregator without an OnGeocode hook reports
// lookups to the service metrics.
func New(reg *campaign.Registry, opts Options) *Service {
	if opts.Store == nil {
		opts.Store = ngram.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Geo == nil {
		opts.Geo = geo.NewAggregator(reg.Countries(), opts.Logger)
	}
	if opts.Geo.OnGeocode == nil && opts.Metrics != nil {
		opts.Geo.OnGeocode = opts.Metrics.ObserveGeocode
	}
	if opts.WordcloudWords <= 0 {
		opts.WordcloudWords = defaultWordcloudWords
	}
	if opts.TopWords <= 0 {
		opts.TopWords = defaultTopWords
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.ResponsesSample <= 0 {
		opts.ResponsesSample = defaultResponsesSample
	}
	if opts.Rand == nil {
		opts.Rand = newRand
	}
	return &Service{reg: reg, opts: opts, log: opts.Logger}
}

// Request asks for one campaign's comparison. A nil filter is the default
// filter; an empty Question selects the dataset's first question.
type Request struct {
	Campaign string
	Question string
	Filter1  *filter.Filter
	Filter2  *filter.Filter
	// Translate, when set, rewrites the human-readable strings of the result.
	Translate func(string) string
}

// Compare filters the campaign with both filters and pairs the results.
func (s *Service) Compare(ctx context.Context, req Request) (*bundle.Comparison, error) {
	start := time.Now()
	c, ok := s.reg.Get(req.Campaign)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCampaign, req.Campaign)
	}
	q := req.Question
	if q == "" {
		q = c.Data.DefaultQuestion()
	}
	rows, ok := c.Data.Question(q)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", ErrUnknownQuestion, c.Code(), q)
	}

	f1, f2 := orDefault(req.Filter1), orDefault(req.Filter2)
	identical := filter.Identical(&f1, &f2)
	onlyParent, _ := breakdown.SingleParent(c.Index, f1.ResponseTopics, f2.ResponseTopics)
	lang := s.language(c)
	stop := ngram.NewStopwords(lang, c.Config.ExtraStopwords...)
	rng := s.opts.Rand()
	sp := sampling{rng: rng, n: s.sampleSize(lang, identical)}

	b1 := s.bundle(ctx, c, q, rows, f1, stop, onlyParent, sp)
	b2 := b1
	if !identical {
		b2 = s.bundle(ctx, c, q, rows, f2, stop, onlyParent, sp)
	}

	out := s.pair(c, q, b1, b2)
	out.FiltersAreIdentical = identical
	out.ResponsesSample = append([]bundle.Response{}, b1.ResponsesSample...)
	if !identical {
		out.ResponsesSample = append(out.ResponsesSample, b2.ResponsesSample...)
	}
	rng.Shuffle(len(out.ResponsesSample), func(i, j int) {
		out.ResponsesSample[i], out.ResponsesSample[j] = out.ResponsesSample[j], out.ResponsesSample[i]
	})
	if req.Translate != nil {
		out.Translate(req.Translate)
	}

	took := time.Since(start)
	s.opts.Metrics.ObserveComparison(c.Code(), took)
	s.log.Debug("comparison computed",
		logger.String("campaign", c.Code()),
		logger.String("question", q),
		logger.Int("respondents_1", out.RespondentsCount1),
		logger.Int("respondents_2", out.RespondentsCount2),
		logger.Bool("identical", identical),
		logger.Duration("took", took))
	return out, nil
}

func orDefault(f *filter.Filter) filter.Filter {
	if f == nil {
		return filter.Default()
	}
	return f.Normalize()
}

func (s *Service) language(c *campaign.Campaign) string {
	if c.Config.Language != "" {
		return c.Config.Language
	}
	return "en"
}

// bundle runs every aggregation for one filter over one question's rows.
func (s *Service) bundle(ctx context.Context, c *campaign.Campaign, q string, rows []*dataset.Row,
	f filter.Filter, stop ngram.Stopwords, onlyParent string, sp sampling) *bundle.Bundle {
	sub := filter.Apply(rows, f)
	caps := c.Config.Capabilities

	bd := breakdown.Aggregate(sub, c.Index, breakdown.Options{OnlyParent: onlyParent})

	counts := s.ngrams(ctx, c, q, sub, f, stop)

	labels := make([]string, 0, len(f.ResponseTopics))
	for _, t := range f.ResponseTopics {
		labels = append(labels, c.Index.Label(t))
	}

	b := &bundle.Bundle{
		RespondentsCount: len(sub),
		Description:      describe.Describe(f, len(sub), c.Nouns(), labels, s.reg.Countries().Demonym),
		ParentCategories: bd.ParentCategories,
		SubCategories:    bd.SubCategories,
		Unigrams:         counts.Unigrams,
		Bigrams:          counts.Bigrams,
		Trigrams:         counts.Trigrams,
		Coordinates:      s.opts.Geo.Aggregate(ctx, sub, caps.RegionCentric),
		Histogram:        map[string]map[string]int{},
		ResponsesSample:  sampleResponses(sp.rng, sub, c.Index, sp.n),
	}

	for _, r := range sub {
		if n, ok := dataset.NumericAge(r.Age); ok {
			b.Ages = append(b.Ages, n)
		}
		if r.AgeBucket != "" {
			b.AgeBuckets = append(b.AgeBuckets, r.AgeBucket)
		}
	}
	b.AverageAge = breakdown.MeanAge(b.Ages)
	b.AverageAgeBucket = breakdown.ModeLabel(b.AgeBuckets)

	if caps.HasAge {
		b.Histogram[bundle.HistAges] = breakdown.Values(sub, func(r *dataset.Row) string { return r.Age })
	}
	if caps.HasAgeBucket {
		b.Histogram[bundle.HistAgeBuckets] = breakdown.Values(sub, func(r *dataset.Row) string { return r.AgeBucket })
	}
	if caps.HasGender {
		b.Histogram[bundle.HistGenders] = breakdown.Values(sub, func(r *dataset.Row) string { return r.Gender })
	}
	if caps.HasProfession {
		b.Histogram[bundle.HistProfession] = breakdown.Values(sub, func(r *dataset.Row) string { return r.Profession })
	}
	b.Histogram[bundle.HistCountries] = breakdown.Values(sub, func(r *dataset.Row) string { return r.CountryName })
	if caps.HasLivingSetting {
		b.LivingSettings = breakdown.Values(sub, func(r *dataset.Row) string { return r.Setting })
	}
	return b
}

// ngrams serves the default filter from the baseline store and counts any other
// filter over its own subset. Store failures fall back to counting.
func (s *Service) ngrams(ctx context.Context, c *campaign.Campaign, q string, sub []*dataset.Row,
	f filter.Filter, stop ngram.Stopwords) ngram.Counts {
	if !f.IsDefault() {
		return ngram.Generate(sub, stop, ngram.Options{
			Keyword:               f.KeywordFilter,
			OnlyPhrasesContaining: f.OnlyMultiWordPhrasesContainingFilterTerm,
		})
	}
	key := ngram.BaselineKey{Campaign: c.Code(), Version: c.Data.Version, Question: q}
	counts, hit, err := ngram.Baseline(ctx, s.opts.Store, key, func() ngram.Counts {
		return ngram.Generate(sub, stop, ngram.Options{})
	})
	if err != nil {
		s.log.Warn("baseline store", logger.String("key", key.String()), logger.Error(err))
		if counts.Unigrams == nil {
			counts = ngram.Generate(sub, stop, ngram.Options{})
		}
	}
	s.opts.Metrics.ObserveBaseline(hit)
	s.log.Debug("baseline", logger.String("key", key.String()), logger.Bool("hit", hit))
	return counts
}
