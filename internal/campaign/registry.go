package campaign

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/KaramelBytes/surveyloom/internal/countries"
	"github.com/KaramelBytes/surveyloom/internal/logger"
)

// Registry holds the loaded campaigns of a directory. Reloads build a new set
// and swap it in; campaigns already handed out are never modified.
type Registry struct {
	dir       string
	countries *countries.Table
	log       logger.Logger

	mu     sync.RWMutex
	byCode map[string]*Campaign
}

// NewRegistry returns an empty registry over dir.
func NewRegistry(dir string, tbl *countries.Table, log logger.Logger) *Registry {
	if tbl == nil {
		tbl = countries.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Registry{dir: dir, countries: tbl, log: log, byCode: map[string]*Campaign{}}
}

// Dir returns the campaigns directory.
func (r *Registry) Dir() string { return r.dir }

// Countries returns the country table used for ingestion.
func (r *Registry) Countries() *countries.Table { return r.countries }

// ConfigPaths lists the campaign YAML files in the directory, sorted.
func (r *Registry) ConfigPaths() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read campaigns dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			out = append(out, filepath.Join(r.dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// LoadAll loads every campaign in the directory and replaces the current set.
// The first failing campaign aborts the load and leaves the current set intact.
func (r *Registry) LoadAll() error {
	paths, err := r.ConfigPaths()
	if err != nil {
		return err
	}
	next := make(map[string]*Campaign, len(paths))
	for _, p := range paths {
		c, err := r.load(p)
		if err != nil {
			return err
		}
		if _, dup := next[c.Code()]; dup {
			return fmt.Errorf("campaign %s defined twice (%s)", c.Code(), p)
		}
		next[c.Code()] = c
	}
	r.mu.Lock()
	r.byCode = next
	r.mu.Unlock()
	return nil
}

// LoadOne loads the campaign with the given code from <dir>/<code>.yaml (or
// .yml) and adds or replaces it.
func (r *Registry) LoadOne(code string) (*Campaign, error) {
	var path string
	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(r.dir, code+ext)
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		return nil, fmt.Errorf("campaign %s: no config in %s", code, r.dir)
	}
	c, err := r.load(path)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	next := make(map[string]*Campaign, len(r.byCode)+1)
	for k, v := range r.byCode {
		next[k] = v
	}
	next[c.Code()] = c
	r.byCode = next
	r.mu.Unlock()
	return c, nil
}

func (r *Registry) load(path string) (*Campaign, error) {
	start := time.Now()
	c, err := Load(path, r.countries)
	if err != nil {
		r.log.Error("load campaign", logger.String("path", path), logger.Error(err))
		return nil, err
	}
	r.log.Info("campaign loaded",
		logger.String("campaign", c.Code()),
		logger.String("version", c.Data.Version),
		logger.Int("rows", len(c.Data.Rows)),
		logger.Strings("questions", c.Data.Questions),
		logger.Duration("took", time.Since(start)))
	return c, nil
}

// Get returns a loaded campaign.
func (r *Registry) Get(code string) (*Campaign, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byCode[code]
	return c, ok
}

// Codes returns the loaded campaign codes, sorted.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byCode))
	for k := range r.byCode {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
