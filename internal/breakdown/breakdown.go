// Package breakdown counts responses per category code and pairs the counts of
// two filtered subsets.
package breakdown

import (
	"sort"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/dataset"
	"github.com/KaramelBytes/surveyloom/internal/hierarchy"
)

// Options controls Aggregate.
type Options struct {
	// OnlyParent restricts sub-category counts to descendants of this parent.
	OnlyParent string
}

// Result holds the parent and sub-category counts of one subset.
type Result struct {
	ParentCategories []bundle.CategoryCount
	SubCategories    []bundle.CategoryCount
}

// Aggregate counts each parent code and each sub-category code once per row.
func Aggregate(rows []*dataset.Row, idx *hierarchy.Index, opts Options) Result {
	parents := map[string]int{}
	subs := map[string]int{}
	for _, r := range rows {
		for _, p := range r.Parents {
			parents[p]++
		}
		for _, c := range r.Codes {
			if opts.OnlyParent != "" {
				if p, ok := idx.Parent(c); !ok || p != opts.OnlyParent {
					continue
				}
			}
			subs[c]++
		}
	}
	return Result{
		ParentCategories: toCounts(parents, idx),
		SubCategories:    toCounts(subs, idx),
	}
}

// SingleParent maps every requested topic to its parent category and returns
// that parent when exactly one results. Topics outside the hierarchy are
// ignored; a parent code maps to itself.
func SingleParent(idx *hierarchy.Index, topicLists ...[]string) (string, bool) {
	parents := map[string]struct{}{}
	for _, p := range idx.ParentCodes() {
		parents[p] = struct{}{}
	}
	set := map[string]struct{}{}
	for _, topics := range topicLists {
		for _, t := range topics {
			if p, ok := idx.Parent(t); ok {
				set[p] = struct{}{}
			} else if _, ok := parents[t]; ok {
				set[t] = struct{}{}
			}
		}
	}
	if len(set) != 1 {
		return "", false
	}
	for p := range set {
		return p, true
	}
	return "", false
}

func toCounts(m map[string]int, idx *hierarchy.Index) []bundle.CategoryCount {
	out := make([]bundle.CategoryCount, 0, len(m))
	for code, n := range m {
		out = append(out, bundle.CategoryCount{Code: code, Label: idx.Label(code), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Pair zips two breakdowns by code. Codes missing on one side count 0 there.
// Sorted by count_1 descending, then count_2 descending, then code.
func Pair(a, b []bundle.CategoryCount) []bundle.CategoryPair {
	byCode := make(map[string]*bundle.CategoryPair, len(a)+len(b))
	var order []string
	get := func(c bundle.CategoryCount) *bundle.CategoryPair {
		p, ok := byCode[c.Code]
		if !ok {
			p = &bundle.CategoryPair{Code: c.Code, Label: c.Label}
			byCode[c.Code] = p
			order = append(order, c.Code)
		}
		return p
	}
	for _, c := range a {
		get(c).Count1 += c.Count
	}
	for _, c := range b {
		get(c).Count2 += c.Count
	}
	out := make([]bundle.CategoryPair, 0, len(order))
	for _, code := range order {
		out = append(out, *byCode[code])
	}
	SortPairs(out)
	return out
}

// SortPairs orders paired categories by count_1 descending.
func SortPairs(pairs []bundle.CategoryPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Count1 != pairs[j].Count1 {
			return pairs[i].Count1 > pairs[j].Count1
		}
		if pairs[i].Count2 != pairs[j].Count2 {
			return pairs[i].Count2 > pairs[j].Count2
		}
		return pairs[i].Code < pairs[j].Code
	})
}

// Limit keeps the first n pairs; n <= 0 keeps everything.
func Limit(pairs []bundle.CategoryPair, n int) []bundle.CategoryPair {
	if n <= 0 || len(pairs) <= n {
		return pairs
	}
	return pairs[:n]
}
