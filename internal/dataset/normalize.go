package dataset

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PreferNotToSay is the canonical spelling used for declined demographic answers.
const PreferNotToSay = "Prefer Not To Say"

// IsPreferNotToSay reports whether s is a declined answer in any casing.
func IsPreferNotToSay(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "prefer not to say")
}

// canonicalDeclined title-cases "prefer not to say" and leaves other values alone.
func canonicalDeclined(s string) string {
	s = strings.TrimSpace(s)
	if IsPreferNotToSay(s) {
		return PreferNotToSay
	}
	return s
}

// newTitleCaser returns a caser for one ingestion pass; casers are not safe for
// concurrent use.
func newTitleCaser() cases.Caser {
	return cases.Title(language.English)
}

// normalizeSetting title-cases living settings ("urban" -> "Urban").
func normalizeSetting(c cases.Caser, s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return c.String(s)
}

// AgeBucket converts a numeric age to its bucket label. Non-numeric values
// (declined answers, ages that already are buckets) are returned unchanged.
// The extended scheme splits 55+ into 55-64 and 65+.
func AgeBucket(age string, extended bool) string {
	age = strings.TrimSpace(age)
	n, ok := parseAge(age)
	if !ok {
		return age
	}
	if extended {
		if n >= 65 {
			return "65+"
		}
		if n >= 55 {
			return "55-64"
		}
	} else if n >= 55 {
		return "55+"
	}
	switch {
	case n >= 45:
		return "45-54"
	case n >= 35:
		return "35-44"
	case n >= 25:
		return "25-34"
	case n >= 20:
		return "20-24"
	case n >= 15:
		return "15-19"
	case n >= 10:
		return "10-14"
	default:
		return "< 10"
	}
}

// NumericAge parses an age made only of digits.
func NumericAge(age string) (int, bool) {
	return parseAge(strings.TrimSpace(age))
}

func parseAge(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseTimeMaybe(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04:05 MST", "2006-01-02T15:04:05",
		"2006-01-02 15:04", "2006-01-02", "2006/01/02",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
