package breakdown

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/dataset"
)

// Order selects how PairNames sorts its output.
type Order int

const (
	// ByCount sorts by count_1 descending.
	ByCount Order = iota
	// ByCountAsc sorts by count_1 ascending, so the largest values come last.
	ByCountAsc
	// ByFirstNumber sorts age-like labels by their first number ("<" counts as 0).
	ByFirstNumber
)

// Values counts the non-empty values of one row attribute.
func Values(rows []*dataset.Row, get func(*dataset.Row) string) map[string]int {
	out := map[string]int{}
	for _, r := range rows {
		if v := get(r); v != "" {
			out[v]++
		}
	}
	return out
}

// PairNames zips two value counts by name. keepLast > 0 keeps only the last
// keepLast entries after sorting.
func PairNames(a, b map[string]int, order Order, keepLast int) []bundle.NamePair {
	seen := map[string]struct{}{}
	var out []bundle.NamePair
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, bundle.NamePair{Name: name, Count1: a[name], Count2: b[name]})
	}
	for k := range a {
		add(k)
	}
	for k := range b {
		add(k)
	}

	sort.Slice(out, func(i, j int) bool {
		switch order {
		case ByFirstNumber:
			ni, nj := firstNumber(out[i].Name), firstNumber(out[j].Name)
			if ni != nj {
				return ni < nj
			}
		case ByCountAsc:
			if out[i].Count1 != out[j].Count1 {
				return out[i].Count1 < out[j].Count1
			}
		default:
			if out[i].Count1 != out[j].Count1 {
				return out[i].Count1 > out[j].Count1
			}
		}
		return out[i].Name < out[j].Name
	})
	if keepLast > 0 && len(out) > keepLast {
		out = out[len(out)-keepLast:]
	}
	return out
}

var firstDigits = regexp.MustCompile(`\d+`)

// firstNumber returns the first number in s; labels starting with "<" sort as 0
// and labels without digits sort last.
func firstNumber(s string) int {
	if strings.HasPrefix(strings.TrimSpace(s), "<") {
		return 0
	}
	m := firstDigits.FindString(s)
	if m == "" {
		return int(^uint(0) >> 1)
	}
	n, _ := strconv.Atoi(m)
	return n
}
