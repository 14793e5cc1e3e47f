package spe

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// spe30Schema is the header layout for format 3.0, embedded so decoding
// never depends on files next to the binary. LoadSchema reads an external
// copy when a site needs to override it.
//
//go:embed spe30_header_format.csv
var spe30Schema string

// SchemaRow describes one numeric field of the binary header.
type SchemaRow struct {
	Offset int64
	Binary string
	Elem   ElemType
	Name   string
}

// Schema is the full header layout, rows ordered by offset.
type Schema struct {
	Rows []SchemaRow
}

var (
	defaultSchemaOnce sync.Once
	defaultSchema     *Schema
	defaultSchemaErr  error
)

// DefaultSchema parses the embedded format 3.0 layout. Parsed once per
// process.
func DefaultSchema() (*Schema, error) {
	defaultSchemaOnce.Do(func() {
		defaultSchema, defaultSchemaErr = parseSchema(strings.NewReader(spe30Schema))
	})
	return defaultSchema, defaultSchemaErr
}

// LoadSchema reads a header layout from an external CSV file.
func LoadSchema(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()
	s, err := parseSchema(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func parseSchema(r io.Reader) (*Schema, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaFormat, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: no data rows", ErrSchemaFormat)
	}
	head := records[0]
	if len(head) != 3 || head[0] != "Offset" || head[1] != "Binary" || head[2] != "Type_Name" {
		return nil, fmt.Errorf("%w: header row %v", ErrSchemaFormat, head)
	}

	rows := make([]SchemaRow, 0, len(records)-1)
	prev := int64(-1)
	for _, rec := range records[1:] {
		if len(rec) != 3 {
			return nil, fmt.Errorf("%w: row %v", ErrSchemaFormat, rec)
		}
		off, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil || off < 0 {
			return nil, fmt.Errorf("%w: bad offset %q", ErrSchemaFormat, rec[0])
		}
		if off <= prev {
			return nil, fmt.Errorf("%w: offsets not increasing at %d", ErrSchemaFormat, off)
		}
		prev = off
		elem, err := BinaryType(rec[1])
		if err != nil {
			return nil, err
		}
		rows = append(rows, SchemaRow{
			Offset: off,
			Binary: rec[1],
			Elem:   elem,
			Name:   rec[2],
		})
	}
	return &Schema{Rows: rows}, nil
}

// elemCount returns how many elements row i spans. The count is the gap to
// the next row's offset minus one; the last row spans exactly one element.
// The units conflate bytes and elements on purpose: files in the wild were
// written against this exact rule, so it is kept byte-for-byte.
func (s *Schema) elemCount(i int) int64 {
	if i == len(s.Rows)-1 {
		return 1
	}
	return s.Rows[i+1].Offset - s.Rows[i].Offset - 1
}
