package campaign

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/dataset"
)

// Option is one selectable filter value.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Metadata string `json:"metadata,omitempty"`
}

// CountryOptions groups region or province options by country.
type CountryOptions struct {
	Country string   `json:"country_alpha2_code"`
	Options []Option `json:"options"`
}

// FilterOptions lists every value a filter can select for a campaign.
type FilterOptions struct {
	Countries      []Option         `json:"countries"`
	Regions        []CountryOptions `json:"country_regions"`
	Provinces      []CountryOptions `json:"country_provinces"`
	ResponseTopics []Option         `json:"response_topics"`
	Ages           []Option         `json:"ages"`
	AgeBuckets     []Option         `json:"age_buckets"`
	Genders        []Option         `json:"genders"`
	Professions    []Option         `json:"professions"`
	LivingSettings []Option         `json:"living_settings"`
	Years          []Option         `json:"response_years"`
}

// Options collects the distinct filter values present in the campaign's dataset.
// Dimensions the campaign does not capture are left empty.
func Options(c *Campaign) FilterOptions {
	caps := c.Config.Capabilities
	var (
		countries   = map[string]string{}
		regions     = map[string]map[string]struct{}{}
		provinces   = map[string]map[string]struct{}{}
		ages        = map[string]struct{}{}
		buckets     = map[string]struct{}{}
		genders     = map[string]struct{}{}
		professions = map[string]struct{}{}
		settings    = map[string]struct{}{}
		years       = map[string]struct{}{}
	)
	addTo := func(m map[string]map[string]struct{}, country, v string) {
		if v == "" {
			return
		}
		if m[country] == nil {
			m[country] = map[string]struct{}{}
		}
		m[country][v] = struct{}{}
	}
	put := func(m map[string]struct{}, v string) {
		if v != "" {
			m[v] = struct{}{}
		}
	}

	for _, r := range c.Data.Rows {
		if r.Country == "" {
			continue
		}
		name := r.CountryName
		if name == "" {
			name = r.Country
		}
		countries[r.Country] = name
		addTo(regions, r.Country, r.Region)
		addTo(provinces, r.Country, r.Province)
		if caps.HasAge {
			put(ages, r.Age)
		}
		if caps.HasAgeBucket && !strings.EqualFold(r.AgeBucket, "n/a") {
			put(buckets, r.AgeBucket)
		}
		if caps.HasGender {
			put(genders, r.Gender)
		}
		if caps.HasProfession {
			put(professions, r.Profession)
		}
		if caps.HasLivingSetting {
			put(settings, r.Setting)
		}
		put(years, r.Year)
	}

	out := FilterOptions{
		Countries:      make([]Option, 0, len(countries)),
		Regions:        []CountryOptions{},
		Provinces:      []CountryOptions{},
		ResponseTopics: []Option{},
		Ages:           sortedOptions(ages, byAge),
		AgeBuckets:     sortedOptions(buckets, byAge),
		Genders:        sortedOptions(genders, nil),
		Professions:    sortedOptions(professions, nil),
		LivingSettings: sortedOptions(settings, nil),
		Years:          sortedOptions(years, nil),
	}
	for code, name := range countries {
		out.Countries = append(out.Countries, Option{Value: code, Label: name})
	}
	sort.Slice(out.Countries, func(i, j int) bool { return out.Countries[i].Label < out.Countries[j].Label })

	for _, o := range out.Countries {
		out.Regions = append(out.Regions, CountryOptions{Country: o.Value, Options: sortedOptions(regions[o.Value], nil)})
		out.Provinces = append(out.Provinces, CountryOptions{Country: o.Value, Options: sortedOptions(provinces[o.Value], nil)})
	}

	for _, t := range c.Index.Topics() {
		o := Option{Value: t.Code, Label: t.Description}
		if t.IsParent {
			o.Metadata = "is_parent"
		}
		out.ResponseTopics = append(out.ResponseTopics, o)
	}
	return out
}

// byAge orders numeric ages and bucket labels by their leading number; the
// declined value goes last.
func byAge(a, b string) bool {
	na, oka := leadingNumber(a)
	nb, okb := leadingNumber(b)
	switch {
	case oka && okb && na != nb:
		return na < nb
	case oka != okb:
		return oka
	}
	return a < b
}

func leadingNumber(s string) (int, bool) {
	if dataset.IsPreferNotToSay(s) {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<") {
		return 0, true
	}
	n := 0
	digits := 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			break
		}
		n = n*10 + int(ch-'0')
		digits++
	}
	return n, digits > 0
}

func sortedOptions(set map[string]struct{}, less func(a, b string) bool) []Option {
	vals := make([]string, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	if less == nil {
		sort.Strings(vals)
	} else {
		sort.Slice(vals, func(i, j int) bool { return less(vals[i], vals[j]) })
	}
	out := make([]Option, 0, len(vals))
	for _, v := range vals {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}
