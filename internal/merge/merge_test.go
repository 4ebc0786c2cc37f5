package merge

import (
	"math/rand/v2"
	"testing"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cmpA() *bundle.Comparison {
	return &bundle.Comparison{
		Campaigns:           []string{"wra"},
		Question:            "q1",
		FiltersAreIdentical: true,
		RespondentsCount1:   3,
		RespondentsCount2:   5,
		Description1:        "Kenyan women",
		Description2:        "All women",
		ParentCategories: []bundle.CategoryPair{
			{Code: "WATER", Label: "Water", Count1: 2, Count2: 4},
		},
		TopWords: []bundle.WordPair{{Word: "water", Count1: 2, Count2: 3}},
		Coordinates1: []bundle.Location{
			{Code: "KE", Name: "Kenya", N: 3},
		},
		Ages1:       []int{10, 20},
		AgeBuckets1: []string{"10-14", "20-24"},
		Histogram: map[string][]bundle.NamePair{
			bundle.HistCountries: {{Name: "Kenya", Count1: 3, Count2: 5}},
		},
	}
}

func cmpB() *bundle.Comparison {
	return &bundle.Comparison{
		Campaigns:           []string{"wwwpakistan"},
		Question:            "q1",
		FiltersAreIdentical: true,
		RespondentsCount1:   4,
		RespondentsCount2:   1,
		Description1:        "Pakistani respondents",
		ParentCategories: []bundle.CategoryPair{
			{Code: "WATER", Label: "Water", Count1: 1, Count2: 0},
			{Code: "water", Label: "water", Count1: 9, Count2: 0},
			{Code: "HEALTH", Label: "Health", Count1: 3, Count2: 1},
		},
		TopWords: []bundle.WordPair{{Word: "water", Count1: 1, Count2: 1}, {Word: "school", Count1: 5}},
		Coordinates1: []bundle.Location{
			{Code: "PK", Name: "Pakistan", N: 4},
		},
		Ages1:       []int{30},
		AgeBuckets1: []string{"20-24"},
		Histogram: map[string][]bundle.NamePair{
			bundle.HistCountries: {{Name: "Pakistan", Count1: 4, Count2: 1}, {Name: "Kenya", Count1: 1}},
		},
	}
}

func TestMerge_SumsAndMeans(t *testing.T) {
	got := Merge([]*bundle.Comparison{cmpA(), cmpB()}, Options{ReferenceCampaign: "wra", TopWords: 20})

	assert.Equal(t, []string{"wra", "wwwpakistan"}, got.Campaigns)
	assert.Equal(t, 7, got.RespondentsCount1)
	assert.Equal(t, 6, got.RespondentsCount2)
	assert.Equal(t, "Kenyan women", got.Description1)
	assert.Equal(t, "All women", got.Description2)

	// Mean over raw ages, not a mean of means.
	assert.Equal(t, "20", got.AverageAge1)
	assert.Equal(t, "N/A", got.AverageAge2)
	assert.Equal(t, "20-24", got.AverageAgeBucket1)

	require.Len(t, got.ParentCategories, 3)
	assert.Equal(t, bundle.CategoryPair{Code: "water", Label: "water", Count1: 9}, got.ParentCategories[0])
	assert.Equal(t, bundle.CategoryPair{Code: "WATER", Label: "Water", Count1: 3, Count2: 4}, got.ParentCategories[1])

	assert.Equal(t, []bundle.WordPair{{Word: "school", Count1: 5}, {Word: "water", Count1: 3, Count2: 4}}, got.TopWords)
	assert.Equal(t, []bundle.NamePair{{Name: "Kenya", Count1: 4, Count2: 5}, {Name: "Pakistan", Count1: 4, Count2: 1}},
		got.Histogram[bundle.HistCountries])
	assert.Len(t, got.Coordinates1, 2)
	assert.NotNil(t, got.Coordinates2)
}

func TestMerge_Commutative(t *testing.T) {
	ab := Merge([]*bundle.Comparison{cmpA(), cmpB()}, Options{ReferenceCampaign: "wra"})
	ba := Merge([]*bundle.Comparison{cmpB(), cmpA()}, Options{ReferenceCampaign: "wra"})

	assert.Equal(t, ab.RespondentsCount1, ba.RespondentsCount1)
	assert.Equal(t, ab.Description1, ba.Description1)
	assert.Equal(t, ab.AverageAge1, ba.AverageAge1)
	assert.ElementsMatch(t, ab.ParentCategories, ba.ParentCategories)
	assert.ElementsMatch(t, ab.TopWords, ba.TopWords)
	assert.ElementsMatch(t, ab.Coordinates1, ba.Coordinates1)
}

func TestMerge_TruncatesWordLists(t *testing.T) {
	a := cmpA()
	for _, w := range []string{"a", "b", "c", "d"} {
		a.WordcloudWords = append(a.WordcloudWords, bundle.WordPair{Word: w, Count1: 1})
	}
	got := Merge([]*bundle.Comparison{a}, Options{WordcloudWords: 2, TopWords: 1})
	assert.Len(t, got.WordcloudWords, 2)
	assert.Len(t, got.TopWords, 1)
	assert.Equal(t, "Kenyan women", got.Description1)
}

func TestMerge_Empty(t *testing.T) {
	got := Merge(nil, Options{})
	assert.Equal(t, 0, got.RespondentsCount1)
	assert.True(t, got.FiltersAreIdentical)
}

func TestByKey_SkipsEmptyAndMatchesExactly(t *testing.T) {
	type kv struct {
		k string
		v int
	}
	out := ByKey([][]kv{{{"a", 1}, {"", 7}, {"A", 2}}, {{"a ", 3}, {"a", 4}}},
		func(x kv) string { return x.k },
		func(dst *kv, src kv) { dst.v += src.v })
	assert.Equal(t, []kv{{"a", 5}, {"A", 2}, {"a ", 3}}, out)
}

func TestMerge_ResponsesSample(t *testing.T) {
	a, b := cmpA(), cmpB()
	a.ResponsesSample = []bundle.Response{{RawResponse: "a1"}, {RawResponse: "a2"}, {RawResponse: "a3"}}
	b.ResponsesSample = []bundle.Response{{RawResponse: "b1"}}

	out := Merge([]*bundle.Comparison{a, b}, Options{ResponsesSample: 2})
	assert.Equal(t, []bundle.Response{{RawResponse: "a1"}, {RawResponse: "a2"}, {RawResponse: "b1"}}, out.ResponsesSample)

	out = Merge([]*bundle.Comparison{a, b}, Options{Rand: rand.New(rand.NewPCG(1, 2))})
	assert.ElementsMatch(t, append(a.ResponsesSample, b.ResponsesSample...), out.ResponsesSample)

	assert.Empty(t, Merge([]*bundle.Comparison{cmpA()}, Options{}).ResponsesSample)
}
