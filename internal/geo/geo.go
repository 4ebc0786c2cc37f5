// Package geo counts responses per country or region and attaches coordinates.
package geo

import (
	"context"
	"sort"

	"github.com/KaramelBytes/surveyloom/internal/bundle"
	"github.com/KaramelBytes/surveyloom/internal/countries"
	"github.com/KaramelBytes/surveyloom/internal/dataset"
	"github.com/KaramelBytes/surveyloom/internal/logger"
	"golang.org/x/sync/singleflight"
)

// Geocoder resolves a free-text place ("Mexico, Oaxaca") to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Coordinate, bool, error)
}

// Aggregator builds location lists. Geocoder may be nil, in which case regions
// missing from Store are dropped.
type Aggregator struct {
	Countries *countries.Table
	Store     Store
	Geocoder  Geocoder
	Logger    logger.Logger

	// OnGeocode, when set, is called after every geocoder lookup.
	OnGeocode func(found bool)

	group singleflight.Group
}

// NewAggregator returns an Aggregator with a fresh memory store.
func NewAggregator(tbl *countries.Table, log logger.Logger) *Aggregator {
	if tbl == nil {
		tbl = countries.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Aggregator{Countries: tbl, Store: NewMemoryStore(), Logger: log}
}

// Aggregate groups rows by country, or by (country, region) when regionCentric
// is set. Groups whose coordinate cannot be resolved are dropped. Sorted by n
// descending, then code.
func (a *Aggregator) Aggregate(ctx context.Context, rows []*dataset.Row, regionCentric bool) []bundle.Location {
	var out []bundle.Location
	if regionCentric {
		out = a.byRegion(ctx, rows)
	} else {
		out = a.byCountry(rows)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Code < out[j].Code
	})
	return out
}

func (a *Aggregator) byCountry(rows []*dataset.Row) []bundle.Location {
	counts := map[string]int{}
	for _, r := range rows {
		if r.Country != "" {
			counts[r.Country]++
		}
	}
	out := make([]bundle.Location, 0, len(counts))
	for code, n := range counts {
		c, ok := a.Countries.Lookup(code)
		if !ok || c.Name == "" {
			continue
		}
		out = append(out, bundle.Location{Code: code, Name: c.Name, N: n, Lat: c.Lat, Lon: c.Lon})
	}
	return out
}

type regionKey struct {
	country, countryName, region string
}

func (a *Aggregator) byRegion(ctx context.Context, rows []*dataset.Row) []bundle.Location {
	counts := map[regionKey]int{}
	for _, r := range rows {
		if r.Country == "" {
			continue
		}
		counts[regionKey{r.Country, r.CountryName, r.Region}]++
	}

	out := make([]bundle.Location, 0, len(counts))
	for k, n := range counts {
		if k.region == "" {
			c, ok := a.Countries.Lookup(k.country)
			if !ok {
				continue
			}
			name := k.countryName
			if name == "" {
				name = c.Name
			}
			out = append(out, bundle.Location{Code: k.country, Name: name, N: n, Lat: c.Lat, Lon: c.Lon})
			continue
		}
		coord, ok := a.resolve(ctx, k)
		if !ok {
			continue
		}
		out = append(out, bundle.Location{Code: k.region, Name: k.region, N: n, Lat: coord.Lat, Lon: coord.Lon})
	}
	return out
}

// resolve looks a region up in the store, falling back to the geocoder and
// saving what it finds. Concurrent lookups of the same region share one call.
func (a *Aggregator) resolve(ctx context.Context, k regionKey) (Coordinate, bool) {
	if c, ok := a.Store.Get(k.country, k.region); ok {
		return c, true
	}
	if a.Geocoder == nil {
		return Coordinate{}, false
	}
	countryName := k.countryName
	if countryName == "" {
		countryName = a.Countries.Name(k.country)
	}
	query := countryName + ", " + k.region

	v, err, _ := a.group.Do(k.country+"\x00"+k.region, func() (any, error) {
		c, found, err := a.Geocoder.Geocode(ctx, query)
		if a.OnGeocode != nil {
			a.OnGeocode(found && err == nil)
		}
		if err != nil || !found {
			return nil, err
		}
		if perr := a.Store.Put(k.country, k.region, c); perr != nil {
			a.Logger.Warn("save region coordinate",
				logger.String("country", k.country),
				logger.String("region", k.region),
				logger.Error(perr))
		}
		return c, nil
	})
	if err != nil {
		a.Logger.Warn("geocode region",
			logger.String("query", query),
			logger.Error(err))
		return Coordinate{}, false
	}
	if v == nil {
		a.Logger.Debug("region not found", logger.String("query", query))
		return Coordinate{}, false
	}
	return v.(Coordinate), true
}
