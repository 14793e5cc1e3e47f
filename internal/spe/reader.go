package spe

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// All SPE data is little-endian.

// readScalars reads up to count elements of type t starting at byte offset
// off, decoding each to float64. A read that runs off the end of the file
// returns the elements that were complete; callers decide whether a short
// result is fatal.
func readScalars(r io.ReaderAt, off int64, t ElemType, count int64) ([]float64, error) {
	size := int64(t.Bits() / 8)
	if size == 0 || count < 0 {
		return nil, ErrUnsupportedType
	}
	buf := make([]byte, count*size)
	n, err := r.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	full := int64(n) / size
	out := make([]float64, full)
	for i := range out {
		out[i] = decodeElem(buf[int64(i)*size:], t)
	}
	return out, nil
}

// readInt64s reads exactly count 64-bit signed integers at off. Unlike
// readScalars it fails on a short read; it backs the per-frame metadata
// block, which is either fully present or the frame is incomplete.
func readInt64s(r io.ReaderAt, off int64, count int) ([]int64, error) {
	buf := make([]byte, count*8)
	if _, err := r.ReadAt(buf, off); err != nil {
		return nil, err
	}
	out := make([]int64, count)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return out, nil
}

func decodeElem(b []byte, t ElemType) float64 {
	switch t {
	case TypeInt8:
		return float64(int8(b[0]))
	case TypeUint8:
		return float64(b[0])
	case TypeInt16:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case TypeUint16:
		return float64(binary.LittleEndian.Uint16(b))
	case TypeInt32:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case TypeUint32:
		return float64(binary.LittleEndian.Uint32(b))
	case TypeInt64:
		return float64(int64(binary.LittleEndian.Uint64(b)))
	case TypeUint64:
		return float64(binary.LittleEndian.Uint64(b))
	case TypeFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case TypeFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	default:
		return math.NaN()
	}
}
