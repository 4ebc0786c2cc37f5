// Package filter models a respondent filter and applies it to dataset rows.
package filter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/dataset"
)

// Filter selects a subset of responses. Every non-empty dimension restricts the
// subset; dimensions combine with AND. The zero value matches everything.
type Filter struct {
	Countries                                []string `json:"countries" yaml:"countries"`
	Regions                                  []string `json:"regions" yaml:"regions"`
	Provinces                                []string `json:"provinces" yaml:"provinces"`
	ResponseTopics                           []string `json:"response_topics" yaml:"response_topics"`
	Genders                                  []string `json:"genders" yaml:"genders"`
	Professions                              []string `json:"professions" yaml:"professions"`
	LivingSettings                           []string `json:"living_settings" yaml:"living_settings"`
	Ages                                     []string `json:"ages" yaml:"ages"`
	AgeBuckets                               []string `json:"age_buckets" yaml:"age_buckets"`
	Years                                    []string `json:"response_years" yaml:"response_years"`
	KeywordFilter                            string   `json:"keyword_filter" yaml:"keyword_filter"`
	KeywordExclude                           string   `json:"keyword_exclude" yaml:"keyword_exclude"`
	OnlyResponsesFromCategories              bool     `json:"only_responses_from_categories" yaml:"only_responses_from_categories"`
	OnlyMultiWordPhrasesContainingFilterTerm bool     `json:"only_multi_word_phrases_containing_filter_term" yaml:"only_multi_word_phrases_containing_filter_term"`
}

// Default returns the filter that matches the whole dataset.
func Default() Filter { return Filter{} }

// Normalize trims and deduplicates every set and trims the keywords. Order of
// first appearance is kept.
func (f Filter) Normalize() Filter {
	f.Countries = cleanSet(f.Countries)
	for i := range f.Countries {
		f.Countries[i] = strings.ToUpper(f.Countries[i])
	}
	f.Regions = cleanSet(f.Regions)
	f.Provinces = cleanSet(f.Provinces)
	f.ResponseTopics = cleanSet(f.ResponseTopics)
	f.Genders = cleanSet(f.Genders)
	f.Professions = cleanSet(f.Professions)
	f.LivingSettings = cleanSet(f.LivingSettings)
	f.Ages = cleanSet(f.Ages)
	f.AgeBuckets = cleanSet(f.AgeBuckets)
	f.Years = cleanSet(f.Years)
	f.KeywordFilter = strings.TrimSpace(f.KeywordFilter)
	f.KeywordExclude = strings.TrimSpace(f.KeywordExclude)
	return f
}

// IsDefault reports whether f restricts nothing. Every dimension counts.
func (f Filter) IsDefault() bool {
	return Identical(&f, nil)
}

// Identical reports whether two filters select the same rows by definition.
// A nil filter equals the default filter; sets compare without regard to order.
func Identical(a, b *Filter) bool {
	x, y := Default(), Default()
	if a != nil {
		x = a.Normalize()
	}
	if b != nil {
		y = b.Normalize()
	}
	return sameSet(x.Countries, y.Countries) &&
		sameSet(x.Regions, y.Regions) &&
		sameSet(x.Provinces, y.Provinces) &&
		sameSet(x.ResponseTopics, y.ResponseTopics) &&
		sameSet(x.Genders, y.Genders) &&
		sameSet(x.Professions, y.Professions) &&
		sameSet(x.LivingSettings, y.LivingSettings) &&
		sameSet(x.Ages, y.Ages) &&
		sameSet(x.AgeBuckets, y.AgeBuckets) &&
		sameSet(x.Years, y.Years) &&
		x.KeywordFilter == y.KeywordFilter &&
		x.KeywordExclude == y.KeywordExclude &&
		x.OnlyResponsesFromCategories == y.OnlyResponsesFromCategories &&
		x.OnlyMultiWordPhrasesContainingFilterTerm == y.OnlyMultiWordPhrasesContainingFilterTerm
}

// Apply returns the rows matching f. The input slice and its rows are never
// modified; the result is always a new slice.
func Apply(rows []*dataset.Row, f Filter) []*dataset.Row {
	f = f.Normalize()
	m := newMatcher(f)
	out := make([]*dataset.Row, 0, len(rows))
	for _, r := range rows {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

type matcher struct {
	f           Filter
	countries   map[string]struct{}
	locations   map[string]struct{}
	regionOnly  bool
	provOnly    bool
	genders     map[string]struct{}
	professions map[string]struct{}
	settings    map[string]struct{}
	ages        map[string]struct{}
	agesOnly    bool
	bucketsOnly bool
	years       map[string]struct{}
	keyword     *regexp.Regexp
	exclude     *regexp.Regexp
}

func newMatcher(f Filter) *matcher {
	m := &matcher{
		f:           f,
		countries:   toSet(f.Countries),
		genders:     toSet(f.Genders),
		professions: toSet(f.Professions),
		settings:    toSet(f.LivingSettings),
		years:       toSet(f.Years),
		keyword:     keywordPattern(f.KeywordFilter),
		exclude:     keywordPattern(f.KeywordExclude),
	}
	// Regions and provinces are one location dimension; same for ages and buckets.
	m.locations = toSet(append(append([]string(nil), f.Regions...), f.Provinces...))
	m.regionOnly = len(f.Regions) > 0 && len(f.Provinces) == 0
	m.provOnly = len(f.Provinces) > 0 && len(f.Regions) == 0
	m.ages = toSet(append(append([]string(nil), f.Ages...), f.AgeBuckets...))
	m.agesOnly = len(f.Ages) > 0 && len(f.AgeBuckets) == 0
	m.bucketsOnly = len(f.AgeBuckets) > 0 && len(f.Ages) == 0
	return m
}

func (m *matcher) match(r *dataset.Row) bool {
	if !inSet(m.countries, r.Country) {
		return false
	}
	if len(m.locations) > 0 {
		switch {
		case m.regionOnly:
			if !has(m.locations, r.Region) {
				return false
			}
		case m.provOnly:
			if !has(m.locations, r.Province) {
				return false
			}
		default:
			if !has(m.locations, r.Region) && !has(m.locations, r.Province) {
				return false
			}
		}
	}
	if !inSet(m.genders, r.Gender) || !inSet(m.professions, r.Profession) ||
		!inSet(m.settings, r.Setting) || !inSet(m.years, r.Year) {
		return false
	}
	if len(m.ages) > 0 {
		switch {
		case m.agesOnly:
			if !has(m.ages, r.Age) {
				return false
			}
		case m.bucketsOnly:
			if !has(m.ages, r.AgeBucket) {
				return false
			}
		default:
			if !has(m.ages, r.Age) && !has(m.ages, r.AgeBucket) {
				return false
			}
		}
	}
	if !m.matchTopics(r) {
		return false
	}
	if m.keyword != nil && !m.keyword.MatchString(r.Lemmatized) {
		return false
	}
	if m.exclude != nil && m.exclude.MatchString(r.Lemmatized) {
		return false
	}
	return true
}

func (m *matcher) matchTopics(r *dataset.Row) bool {
	topics := m.f.ResponseTopics
	if len(topics) == 0 {
		return true
	}
	if m.f.OnlyResponsesFromCategories {
		for _, t := range topics {
			if !topicMatches(r, t) {
				return false
			}
		}
		return true
	}
	for _, t := range topics {
		if topicMatches(r, t) {
			return true
		}
	}
	return false
}

func topicMatches(r *dataset.Row, topic string) bool {
	return r.Codes.Has(topic) || r.Parents.Has(topic)
}

// keywordPattern matches the lower-cased keyword at a word boundary.
func keywordPattern(kw string) *regexp.Regexp {
	if kw == "" {
		return nil
	}
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(kw)))
}

func cleanSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func toSet(in []string) map[string]struct{} {
	if len(in) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(in))
	for _, s := range in {
		m[s] = struct{}{}
	}
	return m
}

func has(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}

// inSet treats an empty set as "no restriction".
func inSet(set map[string]struct{}, v string) bool {
	if len(set) == 0 {
		return true
	}
	return has(set, v)
}
