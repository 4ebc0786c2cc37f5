package breakdown

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// NotAvailable is reported when there is nothing to average.
const NotAvailable = "N/A"

// MeanAge returns the rounded mean of ages, or NotAvailable.
func MeanAge(ages []int) string {
	if len(ages) == 0 {
		return NotAvailable
	}
	sum := 0
	for _, a := range ages {
		sum += a
	}
	return strconv.Itoa(int(math.Round(float64(sum) / float64(len(ages)))))
}

// ModeLabel returns the most frequent label. Ties return every mode, sorted and
// space-joined. Empty labels are ignored.
func ModeLabel(labels []string) string {
	counts := map[string]int{}
	best := 0
	for _, l := range labels {
		if l == "" {
			continue
		}
		counts[l]++
		if counts[l] > best {
			best = counts[l]
		}
	}
	if best == 0 {
		return NotAvailable
	}
	var modes []string
	for l, n := range counts {
		if n == best {
			modes = append(modes, l)
		}
	}
	sort.Strings(modes)
	return strings.Join(modes, " ")
}
