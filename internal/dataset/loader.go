package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Table is the raw header + records form of a dataset file.
type Table struct {
	Name    string
	Header  []string
	Records [][]string
}

// Loader reads one tabular file format.
type Loader interface {
	CanLoad(path string) bool
	Load(path string) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates a file format no loader handles.
var ErrUnsupported = errors.New("unsupported dataset format")

// LoadFile selects a loader by filename and returns the parsed table.
func LoadFile(path string) (*Table, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			t, err := l.Load(path)
			if err != nil {
				return nil, err
			}
			if t.Name == "" {
				t.Name = filepath.Base(path)
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
