package filter

import (
	"testing"

	"github.com/KaramelBytes/surveyloom/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id int, mut func(r *dataset.Row)) *dataset.Row {
	r := &dataset.Row{ID: id, Country: "KE"}
	if mut != nil {
		mut(r)
	}
	return r
}

func ids(rows []*dataset.Row) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func sampleRows() []*dataset.Row {
	return []*dataset.Row{
		row(1, func(r *dataset.Row) {
			r.Region, r.Age, r.AgeBucket, r.Gender = "Nairobi", "23", "20-24", "Female"
			r.Codes, r.Parents = dataset.NewCodeSet("A"), dataset.NewCodeSet("P")
			r.Lemmatized = "clean water for the village"
		}),
		row(2, func(r *dataset.Row) {
			r.Country, r.Province, r.Age, r.AgeBucket = "NG", "Kano", "40", "35-44"
			r.Codes, r.Parents = dataset.NewCodeSet("B"), dataset.NewCodeSet("Q")
			r.Lemmatized = "more school"
		}),
		row(3, func(r *dataset.Row) {
			r.Region, r.Province, r.Age, r.AgeBucket = "Mombasa", "Coast", "Prefer Not To Say", "Prefer Not To Say"
			r.Codes, r.Parents = dataset.NewCodeSet("A", "B"), dataset.NewCodeSet("P", "Q")
			r.Lemmatized = "water and school"
			r.Year = "2023"
		}),
	}
}

func TestApply_DefaultIsIdentity(t *testing.T) {
	rows := sampleRows()
	out := Apply(rows, Default())
	assert.Equal(t, ids(rows), ids(out))

	out[0] = nil
	assert.NotNil(t, rows[0], "input slice must not be shared")
}

func TestApply_Idempotent(t *testing.T) {
	rows := sampleRows()
	filters := []Filter{
		{Countries: []string{"KE"}},
		{ResponseTopics: []string{"A", "B"}, OnlyResponsesFromCategories: true},
		{KeywordFilter: "water", Ages: []string{"23"}, AgeBuckets: []string{"35-44"}},
	}
	for _, f := range filters {
		once := Apply(rows, f)
		twice := Apply(once, f)
		assert.Equal(t, ids(once), ids(twice))
	}
}

func TestApply_Dimensions(t *testing.T) {
	testCases := []struct {
		name string
		f    Filter
		want []int
	}{
		{"country lower case", Filter{Countries: []string{" ke "}}, []int{1, 3}},
		{"region only", Filter{Regions: []string{"Nairobi"}}, []int{1}},
		{"province only", Filter{Provinces: []string{"Kano"}}, []int{2}},
		{"region and province union", Filter{Regions: []string{"Nairobi"}, Provinces: []string{"Kano"}}, []int{1, 2}},
		{"union matches either column", Filter{Regions: []string{"Coast"}, Provinces: []string{"Nowhere"}}, []int{3}},
		{"ages and buckets union", Filter{Ages: []string{"23"}, AgeBuckets: []string{"35-44"}}, []int{1, 2}},
		{"buckets only", Filter{AgeBuckets: []string{"20-24"}}, []int{1}},
		{"gender", Filter{Genders: []string{"Female"}}, []int{1}},
		{"year", Filter{Years: []string{"2023"}}, []int{3}},
		{"unknown value", Filter{Genders: []string{"Other"}}, []int{}},
		{"topics or", Filter{ResponseTopics: []string{"A", "B"}}, []int{1, 2, 3}},
		{"topics and", Filter{ResponseTopics: []string{"A", "B"}, OnlyResponsesFromCategories: true}, []int{3}},
		{"topic by parent", Filter{ResponseTopics: []string{"Q"}}, []int{2, 3}},
		{"keyword", Filter{KeywordFilter: "Water"}, []int{1, 3}},
		{"keyword word boundary", Filter{KeywordFilter: "ater"}, []int{}},
		{"keyword prefix", Filter{KeywordFilter: "schoo"}, []int{2, 3}},
		{"exclude", Filter{KeywordExclude: "school"}, []int{1}},
		{"keyword is quoted", Filter{KeywordFilter: "wat.r"}, []int{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Apply(sampleRows(), tc.f)))
		})
	}
}

func TestApply_TopicAndVsOr(t *testing.T) {
	rows := []*dataset.Row{
		row(1, func(r *dataset.Row) { r.Codes = dataset.NewCodeSet("A") }),
		row(2, func(r *dataset.Row) { r.Codes = dataset.NewCodeSet("B") }),
		row(3, func(r *dataset.Row) { r.Codes = dataset.ParseCodes("A/B") }),
	}
	or := Apply(rows, Filter{ResponseTopics: []string{"A", "B"}})
	and := Apply(rows, Filter{ResponseTopics: []string{"A", "B"}, OnlyResponsesFromCategories: true})
	assert.Equal(t, []int{1, 2, 3}, ids(or))
	assert.Equal(t, []int{3}, ids(and))
}

func TestIsDefault(t *testing.T) {
	assert.True(t, Default().IsDefault())
	assert.True(t, Filter{Countries: []string{" "}}.IsDefault())
	assert.False(t, Filter{Years: []string{"2022"}}.IsDefault())
	assert.False(t, Filter{AgeBuckets: []string{"20-24"}}.IsDefault())
	assert.False(t, Filter{OnlyResponsesFromCategories: true}.IsDefault())
}

func TestIdentical(t *testing.T) {
	a := &Filter{Countries: []string{"KE", "NG"}, KeywordFilter: "water"}
	b := &Filter{Countries: []string{"ng", "KE"}, KeywordFilter: " water "}
	assert.True(t, Identical(a, b))
	assert.True(t, Identical(nil, &Filter{}))
	assert.False(t, Identical(a, nil))
	assert.False(t, Identical(a, &Filter{Countries: []string{"KE"}, KeywordFilter: "water"}))
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := Filter{Countries: []string{"ke", "ke"}}
	out := in.Normalize()
	require.Equal(t, []string{"KE"}, out.Countries)
	assert.Equal(t, []string{"ke", "ke"}, in.Countries)
}
