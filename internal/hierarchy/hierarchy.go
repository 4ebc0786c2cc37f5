// Package hierarchy indexes a campaign's two-level category tree.
package hierarchy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateCode is returned when a code appears twice anywhere in the tree.
	ErrDuplicateCode = errors.New("duplicate category code")
	// ErrMissingDescription is returned when a named node has no description.
	ErrMissingDescription = errors.New("missing category description")
)

// Category is a leaf of the tree.
type Category struct {
	Code        string `yaml:"code" json:"code"`
	Description string `yaml:"description" json:"description"`
}

// Parent is a top-level node. An empty Code marks the unnamed top level.
type Parent struct {
	Code          string     `yaml:"code" json:"code"`
	Description   string     `yaml:"description" json:"description"`
	SubCategories []Category `yaml:"sub_categories" json:"sub_categories"`
}

// Topic is a selectable filter option.
type Topic struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	IsParent    bool   `json:"is_parent"`
}

// Index maps codes to descriptions and sub-categories to their parent.
type Index struct {
	descriptions map[string]string
	parentOf     map[string]string
	children     map[string][]string
	parents      []string
	topics       []Topic
}

// New validates the tree and builds an Index.
func New(tree []Parent) (*Index, error) {
	idx := &Index{
		descriptions: make(map[string]string),
		parentOf:     make(map[string]string),
		children:     make(map[string][]string),
	}
	add := func(code, desc string) error {
		code = strings.TrimSpace(code)
		if _, dup := idx.descriptions[code]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateCode, code)
		}
		if strings.TrimSpace(desc) == "" {
			return fmt.Errorf("%w: %q", ErrMissingDescription, code)
		}
		idx.descriptions[code] = strings.TrimSpace(desc)
		return nil
	}

	for _, p := range tree {
		pc := strings.TrimSpace(p.Code)
		if pc != "" {
			if err := add(pc, p.Description); err != nil {
				return nil, err
			}
			idx.parents = append(idx.parents, pc)
			idx.topics = append(idx.topics, Topic{Code: pc, Description: idx.descriptions[pc], IsParent: true})
		}
		for _, s := range p.SubCategories {
			sc := strings.TrimSpace(s.Code)
			if sc == "" {
				return nil, fmt.Errorf("%w: empty sub-category code under %q", ErrMissingDescription, pc)
			}
			if err := add(sc, s.Description); err != nil {
				return nil, err
			}
			if pc != "" {
				idx.parentOf[sc] = pc
				idx.children[pc] = append(idx.children[pc], sc)
			}
		}
	}
	// Sub-categories follow their parents in the option list.
	for _, p := range tree {
		for _, s := range p.SubCategories {
			sc := strings.TrimSpace(s.Code)
			idx.topics = append(idx.topics, Topic{Code: sc, Description: idx.descriptions[sc]})
		}
	}
	return idx, nil
}

// Description returns the description of a known code.
func (x *Index) Description(code string) (string, bool) {
	d, ok := x.descriptions[code]
	return d, ok
}

// Parent returns the parent code of a sub-category.
func (x *Index) Parent(code string) (string, bool) {
	p, ok := x.parentOf[code]
	return p, ok
}

// ParentOrSelf returns the parent of code, or code itself when it has none.
func (x *Index) ParentOrSelf(code string) string {
	if p, ok := x.parentOf[code]; ok {
		return p
	}
	return code
}

// ParentsOf maps codes to their parent codes, deduplicated and sorted.
func (x *Index) ParentsOf(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		p := x.ParentOrSelf(c)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Label returns the description of code. Unknown or "/"-joined codes get the
// sorted, deduplicated per-part descriptions joined with " / ", falling back to
// the part itself.
func (x *Index) Label(code string) string {
	if d, ok := x.descriptions[code]; ok {
		return d
	}
	seen := map[string]struct{}{}
	var parts []string
	for _, part := range strings.Split(code, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		label := part
		if d, ok := x.descriptions[part]; ok {
			label = d
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		parts = append(parts, label)
	}
	sort.Strings(parts)
	return strings.Join(parts, " / ")
}

// Children returns the sub-category codes of a parent.
func (x *Index) Children(parent string) []string {
	return append([]string(nil), x.children[parent]...)
}

// ParentCodes returns the named top-level codes in tree order.
func (x *Index) ParentCodes() []string {
	return append([]string(nil), x.parents...)
}

// Topics returns every selectable topic: parents first, then sub-categories.
func (x *Index) Topics() []Topic {
	return append([]Topic(nil), x.topics...)
}

// Len reports the number of indexed codes.
func (x *Index) Len() int { return len(x.descriptions) }
