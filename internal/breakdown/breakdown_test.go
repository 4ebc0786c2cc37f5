package breakdown

import (
	"testing"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/dataset"
	"github.com/KaramelBytes/surveyloom/internal/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex(t *testing.T) *hierarchy.Index {
	t.Helper()
	idx, err := hierarchy.New([]hierarchy.Parent{
		{Code: "HEALTH", Description: "Health", SubCategories: []hierarchy.Category{
			{Code: "WATER", Description: "Water"},
			{Code: "NUTRITION", Description: "Nutrition"},
		}},
		{Code: "EDU", Description: "Education", SubCategories: []hierarchy.Category{
			{Code: "SCHOOL", Description: "Schools"},
		}},
	})
	require.NoError(t, err)
	return idx
}

func rowWith(idx *hierarchy.Index, codes string) *dataset.Row {
	c := dataset.ParseCodes(codes)
	return &dataset.Row{Codes: c, Parents: dataset.CodeSet(idx.ParentsOf(c))}
}

func TestAggregate(t *testing.T) {
	idx := testIndex(t)
	rows := []*dataset.Row{
		rowWith(idx, "WATER/NUTRITION"),
		rowWith(idx, "WATER"),
		rowWith(idx, "SCHOOL/ZZZ"),
	}
	res := Aggregate(rows, idx, Options{})

	assert.Equal(t, []bundle.CategoryCount{
		{Code: "HEALTH", Label: "Health", Count: 2},
		{Code: "EDU", Label: "Education", Count: 1},
		{Code: "ZZZ", Label: "ZZZ", Count: 1},
	}, res.ParentCategories)
	assert.Equal(t, []bundle.CategoryCount{
		{Code: "WATER", Label: "Water", Count: 2},
		{Code: "NUTRITION", Label: "Nutrition", Count: 1},
		{Code: "SCHOOL", Label: "Schools", Count: 1},
		{Code: "ZZZ", Label: "ZZZ", Count: 1},
	}, res.SubCategories)
}

func TestAggregate_OnlyParent(t *testing.T) {
	idx := testIndex(t)
	rows := []*dataset.Row{rowWith(idx, "WATER/SCHOOL"), rowWith(idx, "NUTRITION")}
	res := Aggregate(rows, idx, Options{OnlyParent: "HEALTH"})

	codes := []string{}
	for _, c := range res.SubCategories {
		codes = append(codes, c.Code)
	}
	assert.ElementsMatch(t, []string{"WATER", "NUTRITION"}, codes)
	assert.Len(t, res.ParentCategories, 2, "parent counts are never restricted")
}

func TestSingleParent(t *testing.T) {
	idx := testIndex(t)
	p, ok := SingleParent(idx, []string{"WATER"}, []string{"NUTRITION", "HEALTH"})
	assert.True(t, ok)
	assert.Equal(t, "HEALTH", p)

	_, ok = SingleParent(idx, []string{"WATER"}, []string{"SCHOOL"})
	assert.False(t, ok)
	_, ok = SingleParent(idx, nil, nil)
	assert.False(t, ok)
	_, ok = SingleParent(idx, []string{"ZZZ"})
	assert.False(t, ok)
}

func TestSingleParent_IgnoresUnknownTopics(t *testing.T) {
	idx := testIndex(t)
	p, ok := SingleParent(idx, []string{"XYZ", "WATER"})
	assert.True(t, ok)
	assert.Equal(t, "HEALTH", p)

	p, ok = SingleParent(idx, []string{"EDU"}, []string{"SCHOOL", "ZZZ"})
	assert.True(t, ok)
	assert.Equal(t, "EDU", p)
}

func TestPair_DisjointCodes(t *testing.T) {
	pairs := Pair(
		[]bundle.CategoryCount{{Code: "X", Label: "Ex", Count: 3}},
		[]bundle.CategoryCount{{Code: "Y", Label: "Why", Count: 5}},
	)
	assert.Equal(t, []bundle.CategoryPair{
		{Code: "X", Label: "Ex", Count1: 3, Count2: 0},
		{Code: "Y", Label: "Why", Count1: 0, Count2: 5},
	}, pairs)
}

func TestPair_SortedByCount1(t *testing.T) {
	pairs := Pair(
		[]bundle.CategoryCount{{Code: "A", Count: 1}, {Code: "B", Count: 4}},
		[]bundle.CategoryCount{{Code: "A", Count: 9}, {Code: "C", Count: 2}},
	)
	require.Len(t, pairs, 3)
	assert.Equal(t, "B", pairs[0].Code)
	assert.Equal(t, bundle.CategoryPair{Code: "A", Count1: 1, Count2: 9}, pairs[1])
	assert.Equal(t, "C", pairs[2].Code)
	assert.Len(t, Limit(pairs, 2), 2)
	assert.Len(t, Limit(pairs, 0), 3)
}

func TestPairNames(t *testing.T) {
	a := map[string]int{"20-24": 2, "< 10": 1, "55+": 4}
	b := map[string]int{"10-14": 3, "Prefer Not To Say": 1}

	ages := PairNames(a, b, ByFirstNumber, 0)
	names := []string{}
	for _, p := range ages {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"< 10", "10-14", "20-24", "55+", "Prefer Not To Say"}, names)
	assert.Equal(t, bundle.NamePair{Name: "10-14", Count1: 0, Count2: 3}, ages[1])

	top := PairNames(map[string]int{"KE": 5, "NG": 1, "TZ": 3}, nil, ByCountAsc, 2)
	assert.Equal(t, []bundle.NamePair{{Name: "TZ", Count1: 3}, {Name: "KE", Count1: 5}}, top)

	desc := PairNames(map[string]int{"Urban": 1, "Rural": 2}, map[string]int{"Urban": 7}, ByCount, 0)
	assert.Equal(t, "Rural", desc[0].Name)
}

func TestValues(t *testing.T) {
	rows := []*dataset.Row{{Gender: "Female"}, {Gender: ""}, {Gender: "Female"}, {Gender: "Male"}}
	assert.Equal(t, map[string]int{"Female": 2, "Male": 1}, Values(rows, func(r *dataset.Row) string { return r.Gender }))
}
