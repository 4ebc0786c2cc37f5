package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/surveyloom/internal/filter"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// filterFlags builds the drill-down filter from flags, or either filter from a
// YAML/JSON file.
type filterFlags struct {
	countries, regions, provinces, topics []string
	genders, professions, settings        []string
	ages, ageBuckets, years               []string
	keyword, exclude                      string
	allTopics, phrasesWithKeyword         bool

	file1, file2 string
}

func (ff *filterFlags) bind(fs *pflag.FlagSet) {
	fs.StringSliceVar(&ff.countries, "country", nil, "alpha-2 country codes (repeatable)")
	fs.StringSliceVar(&ff.regions, "region", nil, "regions")
	fs.StringSliceVar(&ff.provinces, "province", nil, "provinces")
	fs.StringSliceVar(&ff.topics, "topic", nil, "response topic codes (parent or sub-category)")
	fs.StringSliceVar(&ff.genders, "gender", nil, "genders")
	fs.StringSliceVar(&ff.professions, "profession", nil, "professions")
	fs.StringSliceVar(&ff.settings, "setting", nil, "living settings")
	fs.StringSliceVar(&ff.ages, "age", nil, "ages")
	fs.StringSliceVar(&ff.ageBuckets, "age-bucket", nil, "age buckets, e.g. 20-24")
	fs.StringSliceVar(&ff.years, "year", nil, "response years")
	fs.StringVar(&ff.keyword, "keyword", "", "only responses containing this word")
	fs.StringVar(&ff.exclude, "exclude", "", "drop responses containing this word")
	fs.BoolVar(&ff.allTopics, "all-topics", false, "require every --topic instead of any")
	fs.BoolVar(&ff.phrasesWithKeyword, "phrases-with-keyword", false, "only count phrases containing --keyword")
	fs.StringVar(&ff.file1, "filter1", "", "YAML/JSON file with the drill-down filter (overrides filter flags)")
	fs.StringVar(&ff.file2, "filter2", "", "YAML/JSON file with the compare-to filter (default: all responses)")
}

// filters returns the two filters; a nil filter means all responses.
func (ff *filterFlags) filters() (*filter.Filter, *filter.Filter, error) {
	f1 := &filter.Filter{
		Countries:                                ff.countries,
		Regions:                                  ff.regions,
		Provinces:                                ff.provinces,
		ResponseTopics:                           ff.topics,
		Genders:                                  ff.genders,
		Professions:                              ff.professions,
		LivingSettings:                           ff.settings,
		Ages:                                     ff.ages,
		AgeBuckets:                               ff.ageBuckets,
		Years:                                    ff.years,
		KeywordFilter:                            ff.keyword,
		KeywordExclude:                           ff.exclude,
		OnlyResponsesFromCategories:              ff.allTopics,
		OnlyMultiWordPhrasesContainingFilterTerm: ff.phrasesWithKeyword,
	}
	if ff.file1 != "" {
		f, err := readFilter(ff.file1)
		if err != nil {
			return nil, nil, err
		}
		f1 = f
	}
	var f2 *filter.Filter
	if ff.file2 != "" {
		f, err := readFilter(ff.file2)
		if err != nil {
			return nil, nil, err
		}
		f2 = f
	}
	return f1, f2, nil
}

func readFilter(path string) (*filter.Filter, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filter: %w", err)
	}
	var f filter.Filter
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse filter %s: %w", path, err)
	}
	return &f, nil
}
