// Package merge folds per-campaign comparisons into one cross-campaign view.
package merge

import (
	"math/rand/v2"
	"sort"

	"github.com/KaramelBytes/surveyloom/internal/breakdown"
	"github.com/KaramelBytes/surveyloom/internal/bundle"
)

// Options controls the merged output.
type Options struct {
	// ReferenceCampaign supplies the descriptions. When no input matches, the
	// first comparison is used.
	ReferenceCampaign string
	TopWords          int
	WordcloudWords    int
	// ResponsesSample caps the sampled responses taken from each comparison;
	// 0 takes all of them.
	ResponsesSample   int
	// Rand shuffles the merged sample when set.
	Rand              *rand.Rand
}

// ByKey full-outer-joins lists by key, folding duplicates into the first-seen
// element with add. Items with an empty key are skipped. Keys compare exactly.
func ByKey[T any](lists [][]T, key func(T) string, add func(*T, T)) []T {
	index := map[string]int{}
	var out []T
	for _, list := range lists {
		for _, item := range list {
			k := key(item)
			if k == "" {
				continue
			}
			if i, ok := index[k]; ok {
				add(&out[i], item)
				continue
			}
			index[k] = len(out)
			out = append(out, item)
		}
	}
	return out
}

// Merge combines comparisons of the same question across campaigns.
func Merge(comparisons []*bundle.Comparison, opts Options) *bundle.Comparison {
	out := &bundle.Comparison{
		FiltersAreIdentical: true,
		Histogram:           map[string][]bundle.NamePair{},
	}
	if len(comparisons) == 0 {
		return out
	}

	ref := comparisons[0]
	var (
		parents, subs          [][]bundle.CategoryPair
		cloud, top, two, three [][]bundle.WordPair
		coords1, coords2       [][]bundle.Location
		countries, settings    [][]bundle.NamePair
		samples                [][]bundle.Response
	)
	for _, c := range comparisons {
		if c == nil {
			continue
		}
		if opts.ReferenceCampaign != "" && containsString(c.Campaigns, opts.ReferenceCampaign) {
			ref = c
		}
		out.Campaigns = append(out.Campaigns, c.Campaigns...)
		if out.Question == "" {
			out.Question = c.Question
		}
		out.FiltersAreIdentical = out.FiltersAreIdentical && c.FiltersAreIdentical
		out.RespondentsCount1 += c.RespondentsCount1
		out.RespondentsCount2 += c.RespondentsCount2

		parents = append(parents, c.ParentCategories)
		subs = append(subs, c.SubCategories)
		cloud = append(cloud, c.WordcloudWords)
		top = append(top, c.TopWords)
		two = append(two, c.TwoWordPhrases)
		three = append(three, c.ThreeWordPhrases)
		coords1 = append(coords1, c.Coordinates1)
		coords2 = append(coords2, c.Coordinates2)
		countries = append(countries, c.Histogram[bundle.HistCountries])
		settings = append(settings, c.LivingSettings)
		samples = append(samples, c.ResponsesSample)

		out.Ages1 = append(out.Ages1, c.Ages1...)
		out.Ages2 = append(out.Ages2, c.Ages2...)
		out.AgeBuckets1 = append(out.AgeBuckets1, c.AgeBuckets1...)
		out.AgeBuckets2 = append(out.AgeBuckets2, c.AgeBuckets2...)
	}
	if ref != nil {
		out.Description1 = ref.Description1
		out.Description2 = ref.Description2
	}

	out.ParentCategories = categories(parents)
	out.SubCategories = categories(subs)

	out.WordcloudWords = words(cloud, opts.WordcloudWords)
	out.TopWords = words(top, opts.TopWords)
	out.TwoWordPhrases = words(two, opts.TopWords)
	out.ThreeWordPhrases = words(three, opts.TopWords)

	out.Coordinates1 = locations(coords1)
	out.Coordinates2 = locations(coords2)

	out.AverageAge1 = breakdown.MeanAge(out.Ages1)
	out.AverageAge2 = breakdown.MeanAge(out.Ages2)
	out.AverageAgeBucket1 = breakdown.ModeLabel(out.AgeBuckets1)
	out.AverageAgeBucket2 = breakdown.ModeLabel(out.AgeBuckets2)

	out.Histogram[bundle.HistCountries] = names(countries)
	out.LivingSettings = names(settings)
	out.ResponsesSample = responses(samples, opts.ResponsesSample, opts.Rand)
	return out
}

func categories(lists [][]bundle.CategoryPair) []bundle.CategoryPair {
	out := ByKey(lists,
		func(p bundle.CategoryPair) string { return p.Code },
		func(dst *bundle.CategoryPair, src bundle.CategoryPair) {
			dst.Count1 += src.Count1
			dst.Count2 += src.Count2
		})
	breakdown.SortPairs(out)
	return nonNil(out)
}

func words(lists [][]bundle.WordPair, limit int) []bundle.WordPair {
	out := ByKey(lists,
		func(w bundle.WordPair) string { return w.Word },
		func(dst *bundle.WordPair, src bundle.WordPair) {
			dst.Count1 += src.Count1
			dst.Count2 += src.Count2
		})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count1 > out[j].Count1 })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return nonNil(out)
}

func locations(lists [][]bundle.Location) []bundle.Location {
	out := ByKey(lists,
		func(l bundle.Location) string { return l.Code },
		func(dst *bundle.Location, src bundle.Location) { dst.N += src.N })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Code < out[j].Code
	})
	return nonNil(out)
}

func names(lists [][]bundle.NamePair) []bundle.NamePair {
	out := ByKey(lists,
		func(n bundle.NamePair) string { return n.Name },
		func(dst *bundle.NamePair, src bundle.NamePair) {
			dst.Count1 += src.Count1
			dst.Count2 += src.Count2
		})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count1 > out[j].Count1 })
	return nonNil(out)
}

// responses takes up to limit entries from each sample, which are already in
// random order, and shuffles the union.
func responses(lists [][]bundle.Response, limit int, rng *rand.Rand) []bundle.Response {
	out := []bundle.Response{}
	for _, l := range lists {
		if limit > 0 && len(l) > limit {
			l = l[:limit]
		}
		out = append(out, l...)
	}
	if rng != nil {
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
