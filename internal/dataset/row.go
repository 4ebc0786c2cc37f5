// Package dataset holds cleaned survey responses in memory and loads them from
// tabular files.
package dataset

import (
	"sort"
	"strings"
	"time"
)

// CodeSet is a sorted, deduplicated set of category codes.
type CodeSet []string

// ParseCodes splits a "/"-joined code column into a CodeSet.
func ParseCodes(s string) CodeSet {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	seen := map[string]struct{}{}
	var out CodeSet
	for _, p := range strings.Split(s, "/") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// NewCodeSet builds a CodeSet from arbitrary codes.
func NewCodeSet(codes ...string) CodeSet {
	return ParseCodes(strings.Join(codes, "/"))
}

// Has reports whether code is in the set.
func (s CodeSet) Has(code string) bool {
	i := sort.SearchStrings(s, code)
	return i < len(s) && s[i] == code
}

// String joins the set back into its column form.
func (s CodeSet) String() string { return strings.Join(s, "/") }

// Row is one respondent's answer to one question. Rows are immutable once the
// dataset is built; filters select rows, they never modify them.
type Row struct {
	ID          int
	Question    string
	RawResponse string
	Lemmatized  string
	Tokens      []string
	Codes       CodeSet
	Parents     CodeSet

	Country     string
	CountryName string
	Region      string
	Province    string
	Age         string
	AgeBucket   string
	Gender      string
	Profession  string
	Setting     string
	Year        string
	Source      string
	IngestedAt  time.Time
}
