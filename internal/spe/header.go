package spe

import (
	"fmt"
	"io"
	"math"
)

// spe30RequiredOffsets are the byte offsets whose values a compliant SPE 3.0
// file must carry. Only fields at these offsets get decoded values; the rest
// of the header table is layout only, with Value left NaN.
var spe30RequiredOffsets = map[int64]bool{
	6:    true, // xDimDet
	18:   true, // yDimDet
	34:   true, // noscan
	42:   true, // xdim
	108:  true, // datatype
	656:  true, // ydim
	658:  true, // scramble
	664:  true, // lavgexp
	678:  true, // XMLOffset
	1446: true, // NumFrames
	1992: true, // file_header_ver
	2996: true, // WinView_id
	4098: true, // lastvalue
}

// HeaderField is one decoded row of the binary header.
type HeaderField struct {
	Offset int64
	Count  int64 // elements spanned, per the schema gap rule
	Binary string
	Elem   ElemType
	Name   string
	Value  float64 // NaN unless the field is in the required set
}

// Set reports whether the field carries a decoded value.
func (f HeaderField) Set() bool { return !math.IsNaN(f.Value) }

// HeaderTable is the decoded header, ordered by offset.
type HeaderTable struct {
	Fields []HeaderField

	byName map[string]int
}

// Field returns the named header field.
func (t *HeaderTable) Field(name string) (HeaderField, bool) {
	i, ok := t.byName[name]
	if !ok {
		return HeaderField{}, false
	}
	return t.Fields[i], true
}

// Value returns the decoded value of the named field. ok is false when the
// field is unknown or carries no value.
func (t *HeaderTable) Value(name string) (float64, bool) {
	f, ok := t.Field(name)
	if !ok || !f.Set() {
		return 0, false
	}
	return f.Value, true
}

// requiredValue is Value for fields the format guarantees. Absence means the
// header decode was incomplete, which DecodeHeader already rejects, so a miss
// here is a schema/name mismatch.
func (t *HeaderTable) requiredValue(name string) (float64, error) {
	v, ok := t.Value(name)
	if !ok {
		return 0, fmt.Errorf("%w: required field %q missing", ErrTruncatedHeader, name)
	}
	return v, nil
}

// DecodeHeader reads the binary header of r using the given schema.
//
// Each schema row spans elemCount elements; only the first element becomes
// the field value, because the supported writer zero-fills the remainder. A
// required field whose first element is unreadable makes the whole header
// invalid.
func DecodeHeader(r io.ReaderAt, schema *Schema) (*HeaderTable, error) {
	t := &HeaderTable{
		Fields: make([]HeaderField, 0, len(schema.Rows)),
		byName: make(map[string]int, len(schema.Rows)),
	}
	for i, row := range schema.Rows {
		f := HeaderField{
			Offset: row.Offset,
			Count:  schema.elemCount(i),
			Binary: row.Binary,
			Elem:   row.Elem,
			Name:   row.Name,
			Value:  math.NaN(),
		}
		vals, err := readScalars(r, row.Offset, row.Elem, f.Count)
		if spe30RequiredOffsets[row.Offset] {
			if err != nil {
				return nil, fmt.Errorf("%w: %s at offset %d: %v", ErrTruncatedHeader, row.Name, row.Offset, err)
			}
			if len(vals) == 0 {
				return nil, fmt.Errorf("%w: %s at offset %d past end of file", ErrTruncatedHeader, row.Name, row.Offset)
			}
			f.Value = vals[0]
		}
		// Non-required rows are read best-effort; a failure just leaves
		// the value unset.
		t.byName[row.Name] = len(t.Fields)
		t.Fields = append(t.Fields, f)
	}
	return t, nil
}
