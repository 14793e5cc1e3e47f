package spe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestDecodeHeader(t *testing.T) {
	t.Parallel()

	spec := twoByTwo()
	raw := spec.header()
	s, err := DefaultSchema()
	if err != nil {
		t.Fatal(err)
	}

	table, err := DecodeHeader(bytes.NewReader(raw), s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(table.Fields) != len(s.Rows) {
		t.Fatalf("got %d fields, want %d", len(table.Fields), len(s.Rows))
	}

	wantVals := map[string]float64{
		"xdim":            2,
		"ydim":            2,
		"datatype":        datatypeUint16,
		"XMLOffset":       0,
		"file_header_ver": 3.0,
		"lastvalue":       0x5555,
	}
	for name, want := range wantVals {
		got, ok := table.Value(name)
		if !ok {
			t.Fatalf("%s: no value", name)
		}
		if got != want {
			t.Errorf("%s: got %g want %g", name, got, want)
		}
	}

	// Fields outside the required-offset set stay unset even when the
	// bytes under them are readable.
	f, ok := table.Field("exp_sec")
	if !ok {
		t.Fatal("exp_sec row missing")
	}
	if f.Set() || !math.IsNaN(f.Value) {
		t.Errorf("exp_sec: got value %g, want unset", f.Value)
	}
	if _, ok := table.Value("exp_sec"); ok {
		t.Error("Value(exp_sec) reported ok for an unset field")
	}

	// Ordering by offset is preserved.
	for i := 1; i < len(table.Fields); i++ {
		if table.Fields[i].Offset <= table.Fields[i-1].Offset {
			t.Fatalf("fields out of order at %d", i)
		}
	}
}

// Re-encoding a decoded field with its schema type must reproduce the bytes
// it was decoded from.
func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	spec := twoByTwo()
	spec.xmlOffset = 123456
	raw := spec.header()
	s, err := DefaultSchema()
	if err != nil {
		t.Fatal(err)
	}
	table, err := DecodeHeader(bytes.NewReader(raw), s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	for _, f := range table.Fields {
		if !f.Set() {
			continue
		}
		enc := encodeElem(f.Value, f.Elem)
		if !bytes.Equal(enc, raw[f.Offset:f.Offset+int64(len(enc))]) {
			t.Errorf("%s at %d: re-encoded % x, file has % x",
				f.Name, f.Offset, enc, raw[f.Offset:f.Offset+int64(len(enc))])
		}
	}
}

func encodeElem(v float64, t ElemType) []byte {
	switch t {
	case TypeInt8:
		return []byte{byte(int8(v))}
	case TypeUint8:
		return []byte{byte(uint8(v))}
	case TypeInt16:
		return binary.LittleEndian.AppendUint16(nil, uint16(int16(v)))
	case TypeUint16:
		return binary.LittleEndian.AppendUint16(nil, uint16(v))
	case TypeInt32:
		return binary.LittleEndian.AppendUint32(nil, uint32(int32(v)))
	case TypeUint32:
		return binary.LittleEndian.AppendUint32(nil, uint32(v))
	case TypeInt64:
		return binary.LittleEndian.AppendUint64(nil, uint64(int64(v)))
	case TypeUint64:
		return binary.LittleEndian.AppendUint64(nil, uint64(v))
	case TypeFloat32:
		return binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(v)))
	case TypeFloat64:
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))
	default:
		return nil
	}
}

func TestDecodeHeaderTruncated(t *testing.T) {
	t.Parallel()

	s, err := DefaultSchema()
	if err != nil {
		t.Fatal(err)
	}
	full := twoByTwo().header()

	// Anything shorter than the last required offset plus its element must
	// fail, never yield a partial table.
	for _, n := range []int{0, 100, 2000, 4098, testHeaderSize - 1} {
		_, err := DecodeHeader(bytes.NewReader(full[:n]), s)
		if !errors.Is(err, ErrTruncatedHeader) {
			t.Errorf("%d bytes: got %v, want ErrTruncatedHeader", n, err)
		}
	}

	if _, err := DecodeHeader(bytes.NewReader(full), s); err != nil {
		t.Errorf("full header: %v", err)
	}
}
