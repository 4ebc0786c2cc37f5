package engine

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/campaign"
	"github.com/KaramelBytes/surveyloom/internal/campaign/campaigntest"
	"github.com/KaramelBytes/surveyloom/internal/dataset"
	"github.com/KaramelBytes/surveyloom/internal/filter"
	"github.com/KaramelBytes/surveyloom/internal/hierarchy"
	"github.com/KaramelBytes/surveyloom/internal/metrics"
	"github.com/KaramelBytes/surveyloom/internal/ngram"
	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, opts Options) *Service {
	t.Helper()
	reg := campaign.NewRegistry(campaigntest.Write(t), nil, nil)
	require.NoError(t, reg.LoadAll())
	return New(reg, opts)
}

func wordCount(words []bundle.WordPair, w string) (bundle.WordPair, bool) {
	for _, p := range words {
		if p.Word == w {
			return p, true
		}
	}
	return bundle.WordPair{}, false
}

func TestCompare_CountryVersusAll(t *testing.T) {
	s := newService(t, Options{})
	out, err := s.Compare(context.Background(), Request{
		Campaign: "wra",
		Filter1:  &filter.Filter{Countries: []string{"ke"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"wra"}, out.Campaigns)
	assert.Equal(t, "q1", out.Question)
	assert.False(t, out.FiltersAreIdentical)
	assert.Equal(t, 2, out.RespondentsCount1)
	assert.Equal(t, 4, out.RespondentsCount2)
	assert.Equal(t, "Kenyan women", out.Description1)
	assert.Equal(t, "All women", out.Description2)

	require.NotEmpty(t, out.ParentCategories)
	assert.Equal(t, bundle.CategoryPair{Code: "HEALTH", Label: "Health", Count1: 2, Count2: 4}, out.ParentCategories[0])

	// max1 = 2, max2 over the same words = 3, so count_2 scales by 2/3.
	clean, ok := wordCount(out.TopWords, "clean")
	require.True(t, ok)
	assert.Equal(t, 2, clean.Count1)
	assert.Equal(t, 2, clean.Count2)
	_, ok = wordCount(out.WordcloudWords, "please")
	assert.False(t, ok, "campaign stopwords are excluded")

	assert.Equal(t, "27", out.AverageAge1)
	assert.Equal(t, "24", out.AverageAge2)
	assert.Equal(t, "20-24 25-34", out.AverageAgeBucket1)

	require.Len(t, out.Coordinates1, 1)
	assert.Equal(t, "KE", out.Coordinates1[0].Code)
	assert.Equal(t, 2, out.Coordinates1[0].N)
	assert.Len(t, out.Coordinates2, 2)

	assert.Equal(t, []bundle.NamePair{
		{Name: "Nigeria", Count1: 0, Count2: 2},
		{Name: "Kenya", Count1: 2, Count2: 2},
	}, out.Histogram[bundle.HistCountries])
	assert.Contains(t, out.Histogram, bundle.HistAgeBuckets)
	assert.NotContains(t, out.Histogram, bundle.HistProfession)
	assert.ElementsMatch(t, []bundle.NamePair{
		{Name: "Rural", Count1: 1, Count2: 2},
		{Name: "Urban", Count1: 1, Count2: 2},
	}, out.LivingSettings)
}

func TestCompare_SingleParentRestrictsSubCategories(t *testing.T) {
	s := newService(t, Options{})
	out, err := s.Compare(context.Background(), Request{
		Campaign: "wra",
		Filter1:  &filter.Filter{ResponseTopics: []string{"WATER"}},
		Filter2:  &filter.Filter{ResponseTopics: []string{"CLINIC"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []bundle.CategoryPair{
		{Code: "WATER", Label: "Clean water", Count1: 3, Count2: 0},
		{Code: "CLINIC", Label: "Clinics", Count1: 0, Count2: 1},
	}, out.SubCategories)
	assert.Equal(t, "Women who mentioned clean water", out.Description1)
}

func TestCompare_IdenticalFilters(t *testing.T) {
	s := newService(t, Options{})
	f := &filter.Filter{Genders: []string{"Female"}}
	out, err := s.Compare(context.Background(), Request{Campaign: "wra", Filter1: f, Filter2: f})
	require.NoError(t, err)
	assert.True(t, out.FiltersAreIdentical)
	assert.Equal(t, out.RespondentsCount1, out.RespondentsCount2)
	assert.Equal(t, out.Description1, out.Description2)
}

func TestCompare_Errors(t *testing.T) {
	s := newService(t, Options{})
	_, err := s.Compare(context.Background(), Request{Campaign: "nope"})
	assert.ErrorIs(t, err, ErrUnknownCampaign)

	_, err = s.Compare(context.Background(), Request{Campaign: "wra", Question: "q9"})
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestCompare_EmptySubsetIsValid(t *testing.T) {
	s := newService(t, Options{})
	out, err := s.Compare(context.Background(), Request{
		Campaign: "wra",
		Filter1:  &filter.Filter{Countries: []string{"ZZ"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.RespondentsCount1)
	assert.Equal(t, "N/A", out.AverageAge1)
	assert.Empty(t, out.Coordinates1)
	assert.NotNil(t, out.Coordinates1)
}

func TestCompare_BaselineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := newService(t, Options{Metrics: m})

	require.NoError(t, s.Warm(context.Background()))
	assert.InDelta(t, 2, testutil.ToFloat64(m.BaselineMisses), 0)

	_, err := s.Compare(context.Background(), Request{Campaign: "wra"})
	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(m.BaselineHits), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Comparisons.WithLabelValues("wra")), 0)

	// A filtered subset never touches the baseline.
	_, err = s.Compare(context.Background(), Request{Campaign: "wra", Filter1: &filter.Filter{Years: []string{"2022"}}})
	require.NoError(t, err)
	assert.InDelta(t, 2, testutil.ToFloat64(m.BaselineHits), 0)
}

func TestCompare_RedisBaseline(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := ngram.NewRedisStore(ngram.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s := newService(t, Options{Store: store})
	_, err = s.Compare(context.Background(), Request{Campaign: "pmn"})
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "surveyloom:ngrams:pmn:"))
}

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestCompare_ResponsesSample(t *testing.T) {
	s := newService(t, Options{Rand: seeded})
	req := Request{Campaign: "wra", Filter1: &filter.Filter{Countries: []string{"KE"}}}
	out, err := s.Compare(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, out.ResponsesSample, 6, "two Kenyan responses plus all four")
	assert.Contains(t, out.ResponsesSample, bundle.Response{
		RawResponse: "Better schools and clean water",
		Description: "Clean water / Schools",
		Country:     "Kenya",
		Age:         "31",
	})

	again, err := s.Compare(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, out.ResponsesSample, again.ResponsesSample, "same seed, same sample")
}

func TestCompare_ResponsesSampleSize(t *testing.T) {
	s := newService(t, Options{Rand: seeded, ResponsesSample: 2})
	out, err := s.Compare(context.Background(), Request{
		Campaign: "wra",
		Filter1:  &filter.Filter{Countries: []string{"KE"}},
	})
	require.NoError(t, err)
	assert.Len(t, out.ResponsesSample, 2, "distinct filters split the budget")

	out, err = s.Compare(context.Background(), Request{Campaign: "wra"})
	require.NoError(t, err)
	assert.Len(t, out.ResponsesSample, 2)
}

func TestSampleResponses_SkipsEmpty(t *testing.T) {
	rows := []*dataset.Row{
		{RawResponse: "  ", CountryName: "Kenya"},
		{RawResponse: "More staff", Codes: dataset.NewCodeSet("STAFF"), CountryName: "Kenya"},
	}
	idx, err := hierarchy.New([]hierarchy.Parent{{Code: "WORK", Description: "Working conditions",
		SubCategories: []hierarchy.Category{{Code: "STAFF", Description: "Staffing"}}}})
	require.NoError(t, err)

	got := sampleResponses(seeded(), rows, idx, 10)
	require.Len(t, got, 1)
	assert.Equal(t, bundle.Response{RawResponse: "More staff", Description: "Staffing", Country: "Kenya"}, got[0])
	assert.Nil(t, sampleResponses(seeded(), rows[:1], idx, 10))
}

func TestCompare_Translate(t *testing.T) {
	s := newService(t, Options{})
	out, err := s.Compare(context.Background(), Request{
		Campaign:  "wra",
		Translate: strings.ToUpper,
	})
	require.NoError(t, err)
	assert.Equal(t, "ALL WOMEN", out.Description1)
	assert.Equal(t, "HEALTH", out.ParentCategories[0].Label)
}

func TestCompareMany_Merges(t *testing.T) {
	s := newService(t, Options{Workers: 2})
	out, err := s.CompareMany(context.Background(), ManyRequest{Campaigns: []string{"wra", "pmn"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"wra", "pmn"}, out.Campaigns)
	assert.Equal(t, 7, out.RespondentsCount1)
	assert.Equal(t, "All women", out.Description1)
	assert.Equal(t, "24", out.AverageAge1)
	require.NotEmpty(t, out.ParentCategories)
	assert.Equal(t, "HEALTH", out.ParentCategories[0].Code)
	assert.Equal(t, 5, out.ParentCategories[0].Count1)
	assert.Len(t, out.ResponsesSample, 7)

	_, err = s.CompareMany(context.Background(), ManyRequest{Campaigns: []string{"wra", "nope"}})
	assert.ErrorIs(t, err, ErrUnknownCampaign)
}
