package engine

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/dataset"
	"github.com/KaramelBytes/surveyloom/internal/hierarchy"
)

const defaultResponsesSample = 1000

// sampling carries one comparison's generator and per-filter sample size.
type sampling struct {
	rng *rand.Rand
	n   int
}

func newRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1))
}

// sampleSize is the per-filter sample size. Two distinct filters share the
// budget, and campaigns not in English get a tenth of it.
func (s *Service) sampleSize(lang string, identical bool) int {
	n := s.opts.ResponsesSample
	if !identical {
		n /= 2
	}
	if lang != "en" {
		n /= 10
	}
	return n
}

// sampleResponses draws up to n rows with a non-empty raw response, in random
// order, and captions each with the labels of its codes.
func sampleResponses(rng *rand.Rand, rows []*dataset.Row, idx *hierarchy.Index, n int) []bundle.Response {
	var pool []*dataset.Row
	for _, r := range rows {
		if strings.TrimSpace(r.RawResponse) != "" {
			pool = append(pool, r)
		}
	}
	n = min(n, len(pool))
	if n <= 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	out := make([]bundle.Response, n)
	for i, r := range pool[:n] {
		out[i] = bundle.Response{
			RawResponse: r.RawResponse,
			Description: idx.Label(r.Codes.String()),
			Country:     r.CountryName,
			Age:         r.Age,
		}
	}
	return out
}
