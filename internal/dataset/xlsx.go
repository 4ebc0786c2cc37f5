package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool { return hasExt(path, ".xlsx") }

// Load reads the first sheet; the first row is the header.
func (xlsxLoader) Load(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	t := &Table{}
	first := true
	for rows.Next() {
		vals, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if first {
			first = false
			for _, v := range vals {
				t.Header = append(t.Header, strings.TrimSpace(v))
			}
			continue
		}
		t.Records = append(t.Records, vals)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return t, nil
}
