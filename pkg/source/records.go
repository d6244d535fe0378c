// Package source loads card data: title/tagline rows from a CSV file and
// illustrations discovered by filename.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/swipefish/swipecard/pkg/errors"
)

// Columns names the CSV header cells that hold each field.
type Columns struct {
	ID      string `toml:"id"`
	Title   string `toml:"title"`
	Tagline string `toml:"tagline"`
}

// DefaultColumns matches the swipefish roles sheet.
func DefaultColumns() Columns {
	return Columns{ID: "Role Number", Title: "Role", Tagline: "Tagline"}
}

// Record is one data row.
type Record struct {
	ID      string
	Title   string
	Tagline string
}

// Records is an identifier index over a CSV file. When an identifier
// repeats, the first row wins.
type Records struct {
	byID     map[string]Record
	ids      []string
	warnings []error
}

// LoadRecords reads a CSV file with a header row.
func LoadRecords(path string, cols Columns) (*Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "open %s", path)
	}
	defer f.Close()

	recs, err := ReadRecords(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ReadRecords reads CSV data with a header row from r.
func ReadRecords(r io.Reader, cols Columns) (*Records, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv has no header")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "csv header")
	}

	index := map[string]int{}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		index[strings.TrimSpace(h)] = i
	}
	var pos [3]int
	for i, name := range []string{cols.ID, cols.Title, cols.Tagline} {
		p, ok := index[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "csv has no %q column", name)
		}
		pos[i] = p
	}

	recs := &Records{byID: map[string]Record{}}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "csv row")
		}
		rec := Record{ID: cell(row, pos[0]), Title: cell(row, pos[1]), Tagline: cell(row, pos[2])}
		if rec.ID == "" {
			continue
		}
		if len(row) > len(header) {
			recs.warnings = append(recs.warnings, errors.New(errors.ErrCodeInvalidInput,
				"row %s has %d fields but the header has %d; extra fields ignored (quote values that contain commas)",
				rec.ID, len(row), len(header)))
		}
		if _, dup := recs.byID[rec.ID]; dup {
			continue
		}
		recs.byID[rec.ID] = rec
		recs.ids = append(recs.ids, rec.ID)
	}
	sort.Strings(recs.ids)
	return recs, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// Lookup returns the row for id.
func (r *Records) Lookup(id string) (Record, error) {
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, errors.New(errors.ErrCodeLookup, "identifier %s not found", id)
	}
	return rec, nil
}

// Len returns the number of distinct identifiers.
func (r *Records) Len() int { return len(r.ids) }

// Warnings lists rows whose extra fields were dropped. They are never fatal.
func (r *Records) Warnings() []error { return append([]error(nil), r.warnings...) }

// IDs returns the identifiers in sorted order.
func (r *Records) IDs() []string { return append([]string(nil), r.ids...) }
