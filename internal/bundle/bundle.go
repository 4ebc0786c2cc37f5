// Package bundle defines the result shapes produced per filter and the paired,
// render-ready comparison of two filters.
package bundle

// CategoryCount is one entry of a single-filter breakdown.
type CategoryCount struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryPair is a breakdown entry for both filters.
type CategoryPair struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Count1 int    `json:"count_1"`
	Count2 int    `json:"count_2"`
}

// WordPair is a word or phrase frequency for both filters.
type WordPair struct {
	Word   string `json:"word"`
	Count1 int    `json:"count_1"`
	Count2 int    `json:"count_2"`
}

// NamePair is a demographic value count for both filters.
type NamePair struct {
	Name   string `json:"name"`
	Count1 int    `json:"count_1"`
	Count2 int    `json:"count_2"`
}

// Location is one point of the geographic distribution.
type Location struct {
	Code string  `json:"location_code"`
	Name string  `json:"location_name"`
	N    int     `json:"n"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Response is one sampled raw answer with the captions of its codes.
type Response struct {
	RawResponse string `json:"raw_response"`
	Description string `json:"description"`
	Country     string `json:"canonical_country"`
	Age         string `json:"age"`
}

// Bundle is the aggregate output of one filter over one campaign.
type Bundle struct {
	RespondentsCount int             `json:"respondents_count"`
	Description      string          `json:"description"`
	ParentCategories []CategoryCount `json:"parent_categories"`
	SubCategories    []CategoryCount `json:"sub_categories"`
	Unigrams         map[string]int  `json:"unigrams"`
	Bigrams          map[string]int  `json:"bigrams"`
	Trigrams         map[string]int  `json:"trigrams"`
	Coordinates      []Location      `json:"coordinates"`

	Ages             []int                     `json:"ages"`
	AgeBuckets       []string                  `json:"age_buckets"`
	AverageAge       string                    `json:"average_age"`
	AverageAgeBucket string                    `json:"average_age_bucket"`
	Histogram        map[string]map[string]int `json:"histogram"`
	LivingSettings   map[string]int            `json:"living_settings"`
	ResponsesSample  []Response                `json:"responses_sample"`
}

// Histogram keys.
const (
	HistAges       = "ages"
	HistAgeBuckets = "age_buckets"
	HistGenders    = "genders"
	HistProfession = "professions"
	HistCountries  = "canonical_countries"
)

// Comparison pairs the bundles of the drill-down filter (1) and the compare-to
// filter (2). Merged cross-campaign views share the same shape.
type Comparison struct {
	Campaigns           []string `json:"campaigns"`
	Question            string   `json:"question"`
	FiltersAreIdentical bool     `json:"filters_are_identical"`

	RespondentsCount1 int    `json:"respondents_count_1"`
	RespondentsCount2 int    `json:"respondents_count_2"`
	Description1      string `json:"description_1"`
	Description2      string `json:"description_2"`

	ParentCategories []CategoryPair `json:"parent_categories"`
	SubCategories    []CategoryPair `json:"sub_categories"`

	WordcloudWords   []WordPair `json:"wordcloud_words"`
	TopWords         []WordPair `json:"top_words"`
	TwoWordPhrases   []WordPair `json:"two_word_phrases"`
	ThreeWordPhrases []WordPair `json:"three_word_phrases"`

	Coordinates1 []Location `json:"coordinates_1"`
	Coordinates2 []Location `json:"coordinates_2"`

	Ages1             []int    `json:"ages_1"`
	Ages2             []int    `json:"ages_2"`
	AgeBuckets1       []string `json:"age_buckets_1"`
	AgeBuckets2       []string `json:"age_buckets_2"`
	AverageAge1       string   `json:"average_age_1"`
	AverageAge2       string   `json:"average_age_2"`
	AverageAgeBucket1 string   `json:"average_age_bucket_1"`
	AverageAgeBucket2 string   `json:"average_age_bucket_2"`

	Histogram      map[string][]NamePair `json:"histogram"`
	LivingSettings []NamePair            `json:"living_settings"`

	// ResponsesSample mixes raw answers drawn from both filters' subsets.
	ResponsesSample []Response `json:"responses_sample"`
}
