package spe

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Shared synthetic-file builders. Layout constants mirror the embedded
// format 3.0 schema: header is 4100 bytes, data starts right after the
// lastvalue field at 4098.

const (
	testHeaderSize = 4100

	offXDimDet   = 6
	offXDim      = 42
	offDatatype  = 108
	offYDim      = 656
	offXMLOffset = 678
	offHeaderVer = 1992
	offLastValue = 4098

	datatypeUint16 = 3
)

type speSpec struct {
	xdim, ydim int
	datatype   int16
	xmlOffset  uint64
	frames     [][]uint16 // pixels per frame, row-major
	metas      [][3]int64 // exposure-start ticks, exposure-end ticks, tracking number
	footer     string     // appended verbatim after the frames
}

func (s speSpec) header() []byte {
	hdr := make([]byte, testHeaderSize)
	binary.LittleEndian.PutUint16(hdr[offXDimDet:], uint16(s.xdim))
	binary.LittleEndian.PutUint16(hdr[offXDim:], uint16(s.xdim))
	binary.LittleEndian.PutUint16(hdr[offYDim:], uint16(s.ydim))
	binary.LittleEndian.PutUint16(hdr[offDatatype:], uint16(s.datatype))
	binary.LittleEndian.PutUint64(hdr[offXMLOffset:], s.xmlOffset)
	binary.LittleEndian.PutUint32(hdr[offHeaderVer:], math.Float32bits(3.0))
	binary.LittleEndian.PutUint16(hdr[offLastValue:], 0x5555)
	return hdr
}

func (s speSpec) bytes() []byte {
	buf := s.header()
	for i, frame := range s.frames {
		for _, px := range frame {
			buf = binary.LittleEndian.AppendUint16(buf, px)
		}
		var meta [3]int64
		if i < len(s.metas) {
			meta = s.metas[i]
		}
		for _, m := range meta {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(m))
		}
	}
	return append(buf, s.footer...)
}

func writeSPE(t *testing.T, s speSpec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.spe")
	if err := os.WriteFile(path, s.bytes(), 0o644); err != nil {
		t.Fatalf("write spe: %v", err)
	}
	return path
}

// twoByTwo is the canonical fixture: 2x2 unsigned 16-bit pixels, two
// complete strides after the header.
func twoByTwo() speSpec {
	return speSpec{
		xdim:     2,
		ydim:     2,
		datatype: datatypeUint16,
		frames: [][]uint16{
			{10, 20, 30, 40},
			{11, 21, 31, 41},
		},
		metas: [][3]int64{
			{1_000_000, 3_000_000, 1},
			{4_000_000, 6_000_000, 2},
		},
	}
}
