// Package describe turns a filter into a human-readable sentence such as
// "Kenyan female nurses aged 20-24 who mentioned water".
package describe

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KaramelBytes/surveyloom/internal/filter"
	"github.com/jinzhu/inflection"
)

// Nouns names a campaign's respondents.
type Nouns struct {
	Singular string
	Plural   string
}

// DemonymFunc resolves a country code to its demonym.
type DemonymFunc func(code string) (string, bool)

// Describe builds the sentence for f. topicLabels are the descriptions of the
// filter's response topics, in filter order.
func Describe(f filter.Filter, count int, nouns Nouns, topicLabels []string, demonym DemonymFunc) string {
	f = f.Normalize()

	var respondent string
	switch {
	case len(f.Professions) == 0 && count == 1:
		respondent = nouns.Singular
	case len(f.Professions) == 0:
		respondent = nouns.Plural
	case count == 1:
		respondent = JoinAnd(f.Professions, true)
	default:
		plural := make([]string, len(f.Professions))
		for i, p := range f.Professions {
			plural[i] = inflection.Plural(p)
		}
		respondent = JoinAnd(plural, true)
	}

	description := respondent
	if len(f.Countries) > 0 {
		var demonyms []string
		if demonym != nil {
			for _, c := range f.Countries {
				if d, ok := demonym(c); ok {
					demonyms = append(demonyms, d)
				}
			}
		}
		if len(demonyms) > 0 {
			description = JoinAnd(demonyms, false) + " " + respondent
		} else {
			description = ""
		}
	}

	if len(f.Genders) > 0 {
		var stated []string
		declined := false
		for _, g := range f.Genders {
			if isDeclined(g) {
				declined = true
				continue
			}
			stated = append(stated, g)
		}
		if len(stated) > 0 {
			description = JoinOr(stated, true) + " " + description
		}
		if declined {
			description += " who did not give a gender"
		}
	}

	if places := append(append([]string(nil), f.Regions...), f.Provinces...); len(places) > 0 {
		description += " in " + JoinOr(places, false)
	}

	description += Ages(append(append([]string(nil), f.Ages...), f.AgeBuckets...))

	if len(topicLabels) > 0 {
		if f.OnlyResponsesFromCategories {
			description += " who mentioned " + JoinAnd(topicLabels, true)
		} else {
			description += " who mentioned " + JoinOr(topicLabels, true)
		}
	}

	if f.KeywordFilter != "" {
		if len(topicLabels) == 0 {
			description += " who mentioned "
		} else {
			description += " and "
		}
		description += `"` + strings.ToLower(f.KeywordFilter) + `"`
	}

	if f.KeywordExclude != "" {
		if len(topicLabels) > 0 {
			description += ` but not "` + f.KeywordExclude + `"`
		} else {
			description += ` who did not mention "` + f.KeywordExclude + `"`
		}
	}

	if description == respondent {
		description = "all " + respondent
	}
	return CapitalizeFirst(description)
}

var bucketPivot = regexp.MustCompile(`-19 or 20|-24 or 25|-34 or 35|-44 or 45|-54 or 55`)

// Ages describes selected ages and age buckets, collapsing adjacent standard
// buckets ("15-19 or 20-24" becomes "15-24").
func Ages(ages []string) string {
	if len(ages) == 0 {
		return ""
	}
	if len(ages) == 1 && isDeclined(ages[0]) {
		return " who did not give their age"
	}
	var stated []string
	declined := false
	for _, a := range ages {
		if isDeclined(a) {
			declined = true
			continue
		}
		stated = append(stated, a)
	}
	sort.Strings(stated)
	groups := strings.Join(stated, " or ")
	if declined {
		groups += " or who did not give their age"
	}
	return " aged " + bucketPivot.ReplaceAllString(groups, "")
}

// JoinAnd joins items as "a, b and c".
func JoinAnd(items []string, lower bool) string { return join(items, "and", lower) }

// JoinOr joins items as "a, b or c".
func JoinOr(items []string, lower bool) string { return join(items, "or", lower) }

func join(items []string, conj string, lower bool) string {
	if len(items) == 0 {
		return ""
	}
	list := make([]string, len(items))
	for i, s := range items {
		if lower {
			s = strings.ToLower(s)
		}
		list[i] = s
	}
	if len(list) == 1 {
		return list[0]
	}
	return strings.Join(list[:len(list)-1], ", ") + " " + conj + " " + list[len(list)-1]
}

// CapitalizeFirst upper-cases the first character only.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isDeclined(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "prefer not to say")
}
