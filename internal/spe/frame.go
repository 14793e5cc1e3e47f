package spe

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// FrameMeta is the per-frame metadata block trailing each frame's pixels.
// Timestamps are absolute UTC, reconstructed as file creation time plus the
// camera's tick counter. Only meaningful while the creation time is a good
// proxy for the start of the acquisition, which holds for online use.
type FrameMeta struct {
	ExposureStart  time.Time
	ExposureEnd    time.Time
	TrackingNumber int64
}

// Frame is one complete frame read from the file. Frames are built per read
// request and never cached.
type Frame struct {
	Index int // resolved, non-negative
	XDim  int
	YDim  int
	Elem  ElemType
	Meta  FrameMeta

	raw []byte
}

// Bytes returns the raw little-endian pixel block.
func (f *Frame) Bytes() []byte { return f.raw }

// At returns the pixel at row y, column x as float64. Row-major, shape
// (YDim, XDim).
func (f *Frame) At(y, x int) float64 {
	size := f.Elem.Bits() / 8
	return decodeElem(f.raw[(y*f.XDim+x)*size:], f.Elem)
}

// Float64s decodes all pixels to float64 in row-major order.
func (f *Frame) Float64s() []float64 {
	size := f.Elem.Bits() / 8
	out := make([]float64, f.XDim*f.YDim)
	for i := range out {
		out[i] = decodeElem(f.raw[i*size:], f.Elem)
	}
	return out
}

// resolveIndex maps any requested index onto [0, n) with floor modulo, so
// negative indices count back from the most recently completed frame
// (-1 is the last one) and an index of -n wraps to frame 0.
func resolveIndex(index, n int) int {
	return ((index % n) + n) % n
}

// Frame reads the frame at index. Negative indices count from the end. The
// frame count is re-derived from the live file size first, so the same index
// may resolve to a different frame as the file grows.
//
// The session's last-read index is updated only after every read succeeds; a
// failed call leaves the session untouched.
func (f *File) Frame(index int) (*Frame, error) {
	n, err := numFramesAvailable(f.f, f.geom)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrameRead, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFrames, f.path)
	}
	resolved := resolveIndex(index, n)

	g := f.geom
	frameOff := g.StartOffset + int64(resolved)*g.BytesPerStride
	metaOff := frameOff + g.BytesPerFrame

	raw := make([]byte, g.BytesPerFrame)
	if _, err := f.f.ReadAt(raw, frameOff); err != nil {
		return nil, fmt.Errorf("%w: frame %d pixels: %v", ErrFrameRead, resolved, err)
	}
	ticks, err := readMetaInts(f.f, metaOff, int(g.BytesPerMetaElement), NumMetaElements)
	if err != nil {
		return nil, fmt.Errorf("%w: frame %d metadata: %v", ErrFrameRead, resolved, err)
	}

	f.lastReadIndex = resolved
	return &Frame{
		Index: resolved,
		XDim:  g.XDim,
		YDim:  g.YDim,
		Elem:  g.Elem,
		Meta: FrameMeta{
			ExposureStart:  f.tickTime(ticks[0]),
			ExposureEnd:    f.tickTime(ticks[1]),
			TrackingNumber: ticks[2],
		},
		raw: raw,
	}, nil
}

// Frames reads every frame currently present, in order. The count is
// snapshotted once at the start, so frames appended mid-call are not included.
// An empty file returns an empty slice, not an error.
func (f *File) Frames() ([]*Frame, error) {
	n, err := numFramesAvailable(f.f, f.geom)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrameRead, err)
	}
	frames := make([]*Frame, 0, n)
	for i := range n {
		fr, err := f.Frame(i)
		if err != nil {
			return nil, err
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

// tickTime converts a tick count since acquisition start to absolute UTC,
// anchored at the file's creation time.
func (f *File) tickTime(ticks int64) time.Time {
	d := time.Duration(float64(ticks) / float64(f.ticksPerSecond) * float64(time.Second))
	return f.ctime.Add(d).UTC()
}

// readMetaInts reads count signed integers of the configured metadata width.
func readMetaInts(r io.ReaderAt, off int64, width, count int) ([]int64, error) {
	switch width {
	case 8:
		return readInt64s(r, off, count)
	case 4:
		buf := make([]byte, count*4)
		if _, err := r.ReadAt(buf, off); err != nil {
			return nil, err
		}
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(int32(binary.LittleEndian.Uint32(buf[i*4:])))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d-byte metadata elements", ErrUnsupportedType, width)
	}
}
