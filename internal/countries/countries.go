// Package countries holds the alpha-2 country reference table: names, demonyms and
// centroid coordinates.
package countries

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed countries.json
var countriesJSON []byte

// Country is one entry of the reference table.
type Country struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Demonym string  `json:"demonym"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Table is a read-only lookup keyed by upper-case alpha-2 code.
type Table struct {
	byCode map[string]Country
}

// Default returns the embedded table.
func Default() *Table {
	t, err := Parse(countriesJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded countries table: %v", err))
	}
	return t
}

// Parse builds a table from a JSON array of countries.
func Parse(b []byte) (*Table, error) {
	var list []Country
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse countries: %w", err)
	}
	t := &Table{byCode: make(map[string]Country, len(list))}
	for _, c := range list {
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		if c.Code == "" {
			continue
		}
		t.byCode[c.Code] = c
	}
	return t, nil
}

// Lookup returns the country for an alpha-2 code.
func (t *Table) Lookup(code string) (Country, bool) {
	c, ok := t.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// Name returns the country name, or "" when unknown.
func (t *Table) Name(code string) string {
	c, _ := t.Lookup(code)
	return c.Name
}

// Demonym returns the demonym when the country is known and has one.
func (t *Table) Demonym(code string) (string, bool) {
	c, ok := t.Lookup(code)
	if !ok || c.Demonym == "" {
		return "", false
	}
	return c.Demonym, true
}

// Codes returns every code in the table, sorted.
func (t *Table) Codes() []string {
	out := make([]string, 0, len(t.byCode))
	for k := range t.byCode {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
