package spe

import (
	"fmt"
	"io"
)

const (
	// DefaultTicksPerSecond is the tick rate of the timestamp counter in
	// the supported acquisition hardware (ProEM timer-counter card). It is
	// a property of that hardware, not of the file format; other setups
	// can override it per session.
	DefaultTicksPerSecond = 1_000_000

	// DefaultBytesPerMetaElement is the width of one per-frame metadata
	// element. The supported acquisition software writes 64-bit integers;
	// the format itself does not guarantee this, so it stays overridable.
	DefaultBytesPerMetaElement = 8

	// NumMetaElements counts the per-frame metadata elements trailing each
	// frame: exposure-start ticks, exposure-end ticks, tracking number.
	NumMetaElements = 3

	// startOffsetSkip is the fixed distance from the lastvalue field's
	// offset to the first data byte.
	startOffsetSkip = 2
)

// Geometry is everything derived from the header that addresses frames.
// Fixed once the header is decoded: pixel layout cannot change after an
// acquisition starts. The end of file is deliberately not part of it.
type Geometry struct {
	XDim           int
	YDim           int
	PixelsPerFrame int
	Elem           ElemType
	BitsPerElem    int

	BytesPerFrame       int64
	BytesPerMetaElement int64
	BytesPerStride      int64
	StartOffset         int64
}

func deriveGeometry(t *HeaderTable, bytesPerMeta int64) (Geometry, error) {
	xdim, err := t.requiredValue("xdim")
	if err != nil {
		return Geometry{}, err
	}
	ydim, err := t.requiredValue("ydim")
	if err != nil {
		return Geometry{}, err
	}
	datatype, err := t.requiredValue("datatype")
	if err != nil {
		return Geometry{}, err
	}
	if xdim < 1 || ydim < 1 || xdim != float64(int(xdim)) || ydim != float64(int(ydim)) {
		return Geometry{}, fmt.Errorf("%w: dimensions %gx%g", ErrGeometry, xdim, ydim)
	}

	elem, err := PixelType(int(datatype))
	if err != nil {
		return Geometry{}, err
	}

	g := Geometry{
		XDim:                int(xdim),
		YDim:                int(ydim),
		PixelsPerFrame:      int(xdim) * int(ydim),
		Elem:                elem,
		BitsPerElem:         elem.Bits(),
		BytesPerMetaElement: bytesPerMeta,
	}

	frameBits := int64(g.PixelsPerFrame) * int64(g.BitsPerElem)
	if frameBits%8 != 0 {
		return Geometry{}, fmt.Errorf("%w: frame size %d bits is not a whole byte count", ErrGeometry, frameBits)
	}
	g.BytesPerFrame = frameBits / 8
	g.BytesPerStride = g.BytesPerFrame + NumMetaElements*g.BytesPerMetaElement

	last, ok := t.Field("lastvalue")
	if !ok {
		return Geometry{}, fmt.Errorf("%w: schema has no lastvalue row", ErrGeometry)
	}
	g.StartOffset = last.Offset + startOffsetSkip
	return g, nil
}

// numFramesAvailable counts the complete strides currently in the stream.
// The end of file is re-derived by seeking on every call, never cached: an
// acquisition process outside this one may still be appending, and the floor
// division below is what keeps a partially-written trailing frame invisible.
func numFramesAvailable(s io.Seeker, g Geometry) (int, error) {
	eof, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if eof < g.StartOffset {
		return 0, nil
	}
	return int((eof - g.StartOffset) / g.BytesPerStride), nil
}
