package describe

import (
	"testing"

	"github.com/KaramelBytes/surveyloom/internal/countries"
	"github.com/KaramelBytes/surveyloom/internal/filter"
	"github.com/stretchr/testify/assert"
)

var nouns = Nouns{Singular: "respondent", Plural: "respondents"}

func demonyms() DemonymFunc { return countries.Default().Demonym }

func TestDescribe(t *testing.T) {
	testCases := []struct {
		name   string
		f      filter.Filter
		count  int
		topics []string
		want   string
	}{
		{"default singular", filter.Default(), 1, nil, "All respondent"},
		{"default plural", filter.Default(), 7, nil, "All respondents"},
		{"demonyms", filter.Filter{Countries: []string{"KE", "NG"}}, 5, nil, "Kenyan and Nigerian respondents"},
		{"unknown country only", filter.Filter{Countries: []string{"XX"}}, 5, nil, ""},
		{"professions plural", filter.Filter{Professions: []string{"Midwife", "Nurse"}}, 3, nil, "All midwives and nurses"},
		{"profession singular", filter.Filter{Professions: []string{"Midwife"}}, 1, nil, "All midwife"},
		{"genders", filter.Filter{Genders: []string{"Female", "Male"}}, 2, nil, "Female or male respondents"},
		{"gender declined", filter.Filter{Genders: []string{"Prefer Not To Say"}}, 2, nil, "Respondents who did not give a gender"},
		{"gender mixed", filter.Filter{Genders: []string{"Female", "prefer not to say"}, Countries: []string{"KE"}}, 2, nil,
			"Female Kenyan respondents who did not give a gender"},
		{"regions and provinces", filter.Filter{Regions: []string{"Nairobi"}, Provinces: []string{"Kano", "Lagos"}}, 4, nil,
			"Respondents in Nairobi, Kano or Lagos"},
		{"topics or", filter.Filter{ResponseTopics: []string{"A", "B"}}, 4, []string{"Clean Water", "Schools"},
			"Respondents who mentioned clean water or schools"},
		{"topics and", filter.Filter{ResponseTopics: []string{"A", "B"}, OnlyResponsesFromCategories: true}, 4, []string{"Clean Water", "Schools"},
			"Respondents who mentioned clean water and schools"},
		{"keyword", filter.Filter{KeywordFilter: "Water"}, 4, nil, `Respondents who mentioned "water"`},
		{"keyword after topics", filter.Filter{KeywordFilter: "well"}, 4, []string{"Water"}, `Respondents who mentioned water and "well"`},
		{"exclude", filter.Filter{KeywordExclude: "School"}, 4, nil, `Respondents who did not mention "School"`},
		{"exclude after topics", filter.Filter{KeywordExclude: "school"}, 4, []string{"Water"}, `Respondents who mentioned water but not "school"`},
		{"ages", filter.Filter{AgeBuckets: []string{"20-24", "15-19"}}, 4, nil, "Respondents aged 15-24"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Describe(tc.f, tc.count, nouns, tc.topics, demonyms()))
		})
	}
}

func TestAges(t *testing.T) {
	assert.Equal(t, "", Ages(nil))
	assert.Equal(t, " who did not give their age", Ages([]string{"Prefer Not To Say"}))
	assert.Equal(t, " aged 15-24", Ages([]string{"20-24", "15-19"}))
	assert.Equal(t, " aged 25-44 or 55+", Ages([]string{"55+", "35-44", "25-34"}))
	assert.Equal(t, " aged 20-24 or who did not give their age", Ages([]string{"prefer not to say", "20-24"}))
	assert.Equal(t, " aged 23 or 30", Ages([]string{"30", "23"}))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", JoinAnd(nil, true))
	assert.Equal(t, "Kenya", JoinAnd([]string{"Kenya"}, false))
	assert.Equal(t, "kenya", JoinOr([]string{"Kenya"}, true))
	assert.Equal(t, "a and B", JoinAnd([]string{"a", "B"}, false))
	assert.Equal(t, "a, b or c", JoinOr([]string{"A", "B", "C"}, true))
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "", CapitalizeFirst(""))
	assert.Equal(t, "All the WHO people", CapitalizeFirst("all the WHO people"))
	assert.Equal(t, "Émigrés", CapitalizeFirst("émigrés"))
}
