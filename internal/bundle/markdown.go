package bundle

import (
	"fmt"
	"strings"
)

// Markdown renders a compact side-by-side report of the comparison.
func (c *Comparison) Markdown() string {
	var b strings.Builder
	b.WriteString("[COMPARISON]\n")
	if len(c.Campaigns) > 0 {
		b.WriteString(fmt.Sprintf("Campaigns: %s\n", strings.Join(c.Campaigns, ", ")))
	}
	if c.Question != "" {
		b.WriteString(fmt.Sprintf("Question: %s\n", c.Question))
	}
	b.WriteString(fmt.Sprintf("1: %s (n=%d, average age %s, typical age %s)\n",
		safeVal(c.Description1), c.RespondentsCount1, orNA(c.AverageAge1), orNA(c.AverageAgeBucket1)))
	if !c.FiltersAreIdentical {
		b.WriteString(fmt.Sprintf("2: %s (n=%d, average age %s, typical age %s)\n",
			safeVal(c.Description2), c.RespondentsCount2, orNA(c.AverageAge2), orNA(c.AverageAgeBucket2)))
	}
	b.WriteString("\n")

	writeCategories(&b, "[PARENT CATEGORIES]", c.ParentCategories, c.FiltersAreIdentical)
	writeCategories(&b, "[SUB-CATEGORIES]", c.SubCategories, c.FiltersAreIdentical)
	writeWords(&b, "[TOP WORDS]", c.TopWords, c.FiltersAreIdentical)
	writeWords(&b, "[TWO-WORD PHRASES]", c.TwoWordPhrases, c.FiltersAreIdentical)
	writeWords(&b, "[THREE-WORD PHRASES]", c.ThreeWordPhrases, c.FiltersAreIdentical)

	if len(c.Coordinates1) > 0 {
		b.WriteString("[LOCATIONS]\n")
		for _, l := range c.Coordinates1 {
			b.WriteString(fmt.Sprintf("- %s (%s): %d @ %.4f,%.4f\n", safeVal(l.Name), l.Code, l.N, l.Lat, l.Lon))
		}
		b.WriteString("\n")
	}
	if len(c.LivingSettings) > 0 {
		b.WriteString("[LIVING SETTINGS]\n")
		for _, p := range c.LivingSettings {
			writePair(&b, p.Name, p.Count1, p.Count2, c.FiltersAreIdentical)
		}
		b.WriteString("\n")
	}
	if len(c.ResponsesSample) > 0 {
		b.WriteString("[RESPONSES SAMPLE]\n")
		for _, r := range c.ResponsesSample {
			b.WriteString(fmt.Sprintf("- %s [%s] (%s, age %s)\n",
				safeVal(r.RawResponse), safeVal(r.Description), safeVal(r.Country), orNA(r.Age)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeCategories(b *strings.Builder, title string, items []CategoryPair, single bool) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for _, it := range items {
		writePair(b, fmt.Sprintf("%s [%s]", safeVal(it.Label), it.Code), it.Count1, it.Count2, single)
	}
	b.WriteString("\n")
}

func writeWords(b *strings.Builder, title string, items []WordPair, single bool) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for _, it := range items {
		writePair(b, safeVal(it.Word), it.Count1, it.Count2, single)
	}
	b.WriteString("\n")
}

func writePair(b *strings.Builder, name string, c1, c2 int, single bool) {
	if single {
		b.WriteString(fmt.Sprintf("- %s: %d\n", name, c1))
		return
	}
	b.WriteString(fmt.Sprintf("- %s: %d | %d\n", name, c1, c2))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
