package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type csvLoader struct{}

func (csvLoader) CanLoad(path string) bool { return hasExt(path, ".csv", ".tsv") }

func (csvLoader) Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return readCSV(f, sniffDelimiter(path))
}

func readCSV(src io.Reader, delim rune) (*Table, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	t := &Table{Header: header}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func sniffDelimiter(path string) rune {
	if hasExt(path, ".tsv") {
		return '\t'
	}
	return ','
}
