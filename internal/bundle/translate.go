package bundle

// Translate rewrites the caption fields of c in place: descriptions, category
// labels, location names, demographic values and the descriptions of sampled
// responses. Codes, words, ages and raw responses are left untouched.
func (c *Comparison) Translate(tr func(string) string) {
	if c == nil || tr == nil {
		return
	}
	cache := map[string]string{}
	t := func(s string) string {
		if s == "" {
			return s
		}
		if v, ok := cache[s]; ok {
			return v
		}
		v := tr(s)
		cache[s] = v
		return v
	}
	c.Description1 = t(c.Description1)
	c.Description2 = t(c.Description2)
	for i := range c.ParentCategories {
		c.ParentCategories[i].Label = t(c.ParentCategories[i].Label)
	}
	for i := range c.SubCategories {
		c.SubCategories[i].Label = t(c.SubCategories[i].Label)
	}
	for i := range c.Coordinates1 {
		c.Coordinates1[i].Name = t(c.Coordinates1[i].Name)
	}
	for i := range c.Coordinates2 {
		c.Coordinates2[i].Name = t(c.Coordinates2[i].Name)
	}
	for key, pairs := range c.Histogram {
		if numericHistogram[key] {
			continue
		}
		for i := range pairs {
			pairs[i].Name = t(pairs[i].Name)
		}
	}
	for i := range c.LivingSettings {
		c.LivingSettings[i].Name = t(c.LivingSettings[i].Name)
	}
	for i := range c.ResponsesSample {
		c.ResponsesSample[i].Description = t(c.ResponsesSample[i].Description)
		c.ResponsesSample[i].Country = t(c.ResponsesSample[i].Country)
	}
}

// numericHistogram marks histograms whose names are ages, not captions.
var numericHistogram = map[string]bool{
	HistAges:       true,
	HistAgeBuckets: true,
}
