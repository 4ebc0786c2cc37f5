package dataset

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/surveyloom/internal/countries"
	"github.com/KaramelBytes/surveyloom/internal/hierarchy"
	"github.com/google/uuid"
)

// Column names of the cleaned dataset.
const (
	ColCountry       = "alpha2country"
	ColRegion        = "region"
	ColProvince      = "province"
	ColAge           = "age"
	ColGender        = "gender"
	ColProfession    = "profession"
	ColSetting       = "setting"
	ColYear          = "response_year"
	ColSource        = "data_source"
	ColIngestionTime = "ingestion_time"
)

// ErrMissingColumn is returned when a question has a response column but no code column.
var ErrMissingColumn = errors.New("missing required column")

var questionColumn = regexp.MustCompile(`^q(\d+)_raw_response$`)

// BuildOptions controls ingestion.
type BuildOptions struct {
	Index     *hierarchy.Index
	Countries *countries.Table
	// AgeIsBucket marks datasets whose age column already holds bucket labels.
	AgeIsBucket bool
	// ExtendedAgeBuckets splits 55+ into 55-64 and 65+.
	ExtendedAgeBuckets bool
}

// Dataset is an immutable, versioned set of rows for one campaign.
type Dataset struct {
	Name      string
	Version   string
	LoadedAt  time.Time
	Questions []string
	Rows      []*Row

	byQuestion map[string][]*Row
}

// Build parses a table into rows, expanding every q<N> column group into one row
// per answered question.
func Build(t *Table, opt BuildOptions) (*Dataset, error) {
	if opt.Index == nil {
		return nil, errors.New("build dataset: hierarchy index is required")
	}
	if opt.Countries == nil {
		opt.Countries = countries.Default()
	}
	col := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}

	questions, err := findQuestions(col)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		Name:       t.Name,
		Version:    uuid.NewString(),
		LoadedAt:   time.Now(),
		Questions:  questions,
		byQuestion: make(map[string][]*Row, len(questions)),
	}

	get := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	caser := newTitleCaser()
	id := 0
	for _, rec := range t.Records {
		base := Row{
			Country:    strings.ToUpper(get(rec, ColCountry)),
			Region:     get(rec, ColRegion),
			Province:   get(rec, ColProvince),
			Age:        canonicalDeclined(get(rec, ColAge)),
			Gender:     canonicalDeclined(get(rec, ColGender)),
			Profession: get(rec, ColProfession),
			Setting:    normalizeSetting(caser, canonicalDeclined(get(rec, ColSetting))),
			Year:       get(rec, ColYear),
			Source:     get(rec, ColSource),
		}
		base.CountryName = opt.Countries.Name(base.Country)
		if ts, ok := parseTimeMaybe(get(rec, ColIngestionTime)); ok {
			base.IngestedAt = ts
		}
		if opt.AgeIsBucket {
			base.AgeBucket = base.Age
		} else {
			base.AgeBucket = AgeBucket(base.Age, opt.ExtendedAgeBuckets)
		}

		for _, q := range questions {
			raw := get(rec, q+"_raw_response")
			codes := ParseCodes(get(rec, q+"_canonical_code"))
			if raw == "" && len(codes) == 0 {
				continue
			}
			r := base
			r.ID = id
			id++
			r.Question = q
			r.RawResponse = raw
			r.Lemmatized = get(rec, q+"_lemmatized")
			r.Tokens = strings.Split(r.Lemmatized, " ")
			r.Codes = codes
			r.Parents = CodeSet(opt.Index.ParentsOf(codes))
			row := &r
			d.Rows = append(d.Rows, row)
			d.byQuestion[q] = append(d.byQuestion[q], row)
		}
	}
	return d, nil
}

func findQuestions(col map[string]int) ([]string, error) {
	var nums []int
	for name := range col {
		m := questionColumn.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		q := "q" + m[1]
		if _, ok := col[q+"_canonical_code"]; !ok {
			return nil, fmt.Errorf("%w: %s_canonical_code", ErrMissingColumn, q)
		}
		n, _ := strconv.Atoi(m[1])
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("%w: no q<N>_raw_response column", ErrMissingColumn)
	}
	sort.Ints(nums)
	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = "q" + strconv.Itoa(n)
	}
	return out, nil
}

// Question returns the rows answering q. The returned slice is a fresh copy.
func (d *Dataset) Question(q string) ([]*Row, bool) {
	rows, ok := d.byQuestion[q]
	if !ok {
		return nil, false
	}
	return append([]*Row(nil), rows...), true
}

// HasQuestion reports whether q is present in the dataset.
func (d *Dataset) HasQuestion(q string) bool {
	_, ok := d.byQuestion[q]
	return ok
}

// DefaultQuestion returns the first question code.
func (d *Dataset) DefaultQuestion() string {
	if len(d.Questions) == 0 {
		return ""
	}
	return d.Questions[0]
}
