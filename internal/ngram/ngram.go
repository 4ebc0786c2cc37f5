// Package ngram counts unigrams, bigrams and trigrams over lemmatized responses
// and normalizes the counts of two subsets against each other.
package ngram

import (
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/dataset"
)

// Counts holds the three frequency tables of one subset.
type Counts struct {
	Unigrams map[string]int `json:"unigrams"`
	Bigrams  map[string]int `json:"bigrams"`
	Trigrams map[string]int `json:"trigrams"`
}

// Options controls Generate.
type Options struct {
	// Keyword, when OnlyPhrasesContaining is set, keeps only bigrams and
	// trigrams containing it.
	Keyword               string
	OnlyPhrasesContaining bool
}

// Generate counts n-grams over the rows' tokens. Any window containing a
// stopword or an empty token is dropped entirely.
func Generate(rows []*dataset.Row, stop Stopwords, opts Options) Counts {
	c := Counts{
		Unigrams: map[string]int{},
		Bigrams:  map[string]int{},
		Trigrams: map[string]int{},
	}
	ok := func(w string) bool { return w != "" && !stop.Has(w) }

	for _, r := range rows {
		toks := r.Tokens
		for i := range toks {
			if ok(toks[i]) {
				c.Unigrams[toks[i]]++
			}
		}
		for i := 0; i+1 < len(toks); i++ {
			if ok(toks[i]) && ok(toks[i+1]) {
				c.Bigrams[toks[i]+" "+toks[i+1]]++
			}
		}
		for i := 0; i+2 < len(toks); i++ {
			if ok(toks[i]) && ok(toks[i+1]) && ok(toks[i+2]) {
				c.Trigrams[toks[i]+" "+toks[i+1]+" "+toks[i+2]]++
			}
		}
	}

	kw := strings.ToLower(strings.TrimSpace(opts.Keyword))
	if opts.OnlyPhrasesContaining && kw != "" {
		c.Bigrams = onlyContaining(c.Bigrams, kw)
		c.Trigrams = onlyContaining(c.Trigrams, kw)
	}
	return c
}

func onlyContaining(m map[string]int, kw string) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		if strings.Contains(k, kw) {
			out[k] = v
		}
	}
	return out
}

// Top returns the k most frequent entries of c1, most frequent first, with the
// subset-2 count of each word scaled by max1/max2. max2 is taken over the same
// vocabulary in c2; the scale is 1 when that vocabulary has no positive count.
func Top(c1, c2 map[string]int, k int) []bundle.WordPair {
	type wc struct {
		w string
		n int
	}
	list := make([]wc, 0, len(c1))
	for w, n := range c1 {
		list = append(list, wc{w, n})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].n != list[j].n {
			return list[i].n > list[j].n
		}
		return list[i].w < list[j].w
	})
	if k > 0 && len(list) > k {
		list = list[:k]
	}
	if len(list) == 0 {
		return []bundle.WordPair{}
	}

	max1 := list[0].n
	max2 := 0
	for _, e := range list {
		if v := c2[e.w]; v > max2 {
			max2 = v
		}
	}
	scale := 1.0
	if max2 > 0 {
		scale = float64(max1) / float64(max2)
	}

	out := make([]bundle.WordPair, 0, len(list))
	for _, e := range list {
		out = append(out, bundle.WordPair{
			Word:   strings.ToLower(e.w),
			Count1: e.n,
			Count2: int(math.Round(float64(c2[e.w]) * scale)),
		})
	}
	return out
}

// Head returns at most n entries of words.
func Head(words []bundle.WordPair, n int) []bundle.WordPair {
	if n <= 0 || len(words) <= n {
		return words
	}
	return words[:n]
}
