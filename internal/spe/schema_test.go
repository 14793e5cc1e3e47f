package spe

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSchema(t *testing.T) {
	t.Parallel()

	s, err := DefaultSchema()
	if err != nil {
		t.Fatalf("default schema: %v", err)
	}
	if len(s.Rows) == 0 {
		t.Fatal("default schema is empty")
	}

	// Every required offset must have a row, and the names the geometry
	// derivation keys on must sit at their documented offsets.
	byOffset := make(map[int64]SchemaRow, len(s.Rows))
	for _, r := range s.Rows {
		byOffset[r.Offset] = r
	}
	for off := range spe30RequiredOffsets {
		if _, ok := byOffset[off]; !ok {
			t.Errorf("required offset %d has no schema row", off)
		}
	}
	want := map[int64]string{
		42:   "xdim",
		108:  "datatype",
		656:  "ydim",
		678:  "XMLOffset",
		4098: "lastvalue",
	}
	for off, name := range want {
		if got := byOffset[off].Name; got != name {
			t.Errorf("offset %d: got name %q want %q", off, got, name)
		}
	}

	last := s.Rows[len(s.Rows)-1]
	if last.Name != "lastvalue" {
		t.Errorf("last row is %q, want lastvalue", last.Name)
	}
	if n := s.elemCount(len(s.Rows) - 1); n != 1 {
		t.Errorf("last row spans %d elements, want 1", n)
	}
}

func TestSchemaElemCountGapRule(t *testing.T) {
	t.Parallel()

	s, err := parseSchema(strings.NewReader(
		"Offset,Binary,Type_Name\n0,16u,a\n10,16u,b\n12,16s,c\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// Count is the offset gap minus one, and exactly 1 for the last row.
	if got := s.elemCount(0); got != 9 {
		t.Errorf("row 0: got %d elements, want 9", got)
	}
	if got := s.elemCount(1); got != 1 {
		t.Errorf("row 1: got %d elements, want 1", got)
	}
	if got := s.elemCount(2); got != 1 {
		t.Errorf("row 2: got %d elements, want 1", got)
	}
}

func TestLoadSchema(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadSchema(filepath.Join(dir, "nope.csv"))
	if !errors.Is(err, ErrSchemaNotFound) {
		t.Errorf("missing file: got %v, want ErrSchemaNotFound", err)
	}

	good := filepath.Join(dir, "good.csv")
	content := "# comment line\nOffset,Binary,Type_Name\n# another comment\n0,16u,a\n4,32f,b\n"
	if err := os.WriteFile(good, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSchema(good)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (comments must be skipped)", len(s.Rows))
	}
	if s.Rows[1].Elem != TypeFloat32 {
		t.Errorf("row 1 elem: got %v want f32", s.Rows[1].Elem)
	}
}

func TestLoadSchemaFormatErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"wrong header":   "Off,Bin,Name\n0,16u,a\n",
		"missing column": "Offset,Binary,Type_Name\n0,16u\n",
		"bad offset":     "Offset,Binary,Type_Name\nten,16u,a\n",
		"non-increasing": "Offset,Binary,Type_Name\n10,16u,a\n4,16u,b\n",
		"empty":          "",
	}
	for name, content := range cases {
		_, err := parseSchema(strings.NewReader(content))
		if !errors.Is(err, ErrSchemaFormat) {
			t.Errorf("%s: got %v, want ErrSchemaFormat", name, err)
		}
	}

	_, err := parseSchema(strings.NewReader("Offset,Binary,Type_Name\n0,24u,a\n"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("unknown tag: got %v, want ErrUnsupportedType", err)
	}
}
