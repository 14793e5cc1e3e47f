package calib

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// Master artifacts are stored as a little-endian u64 header length, a JSON
// metadata header, then the raw float64 pixel payload. Self-describing
// enough to survive tooling changes, unlike the opaque serialization the
// pipeline used to rely on.

type storeHeader struct {
	ImageType   string    `json:"image_type"`
	Shape       [2]int    `json:"shape"` // (ydim, xdim)
	DType       string    `json:"dtype"`
	NumCombined int       `json:"num_combined"`
	Source      string    `json:"source"`
	RunID       string    `json:"run_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// WriteMaster persists a master frame to path.
func WriteMaster(path string, m *Master) error {
	hdr, err := json.Marshal(storeHeader{
		ImageType:   m.ImageType,
		Shape:       [2]int{m.YDim, m.XDim},
		DType:       "f64",
		NumCombined: m.NumCombined,
		Source:      m.Source,
		RunID:       m.RunID,
		CreatedAt:   m.CreatedAt,
	})
	if err != nil {
		return err
	}

	buf := binary.LittleEndian.AppendUint64(nil, uint64(len(hdr)))
	buf = append(buf, hdr...)
	for _, v := range m.Pixels {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return os.WriteFile(path, buf, 0o644)
}

// ReadMaster loads a master frame persisted by WriteMaster.
func ReadMaster(path string) (*Master, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lenBuf [8]byte
	if _, err := io.ReadFull(f, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("%s: read header length: %w", path, err)
	}
	hdrLen := binary.LittleEndian.Uint64(lenBuf[:])
	hdrBytes := make([]byte, hdrLen)
	if _, err := io.ReadFull(f, hdrBytes); err != nil {
		return nil, fmt.Errorf("%s: read header: %w", path, err)
	}
	var hdr storeHeader
	if err := json.Unmarshal(hdrBytes, &hdr); err != nil {
		return nil, fmt.Errorf("%s: parse header: %w", path, err)
	}
	if hdr.DType != "f64" {
		return nil, fmt.Errorf("%s: unsupported dtype %q", path, hdr.DType)
	}
	if hdr.Shape[0] < 1 || hdr.Shape[1] < 1 {
		return nil, fmt.Errorf("%s: invalid shape %v", path, hdr.Shape)
	}

	n := hdr.Shape[0] * hdr.Shape[1]
	raw := make([]byte, n*8)
	if _, err := io.ReadFull(f, raw); err != nil {
		return nil, fmt.Errorf("%s: read pixels: %w", path, err)
	}
	pixels := make([]float64, n)
	for i := range pixels {
		pixels[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}

	return &Master{
		ImageType:   hdr.ImageType,
		XDim:        hdr.Shape[1],
		YDim:        hdr.Shape[0],
		NumCombined: hdr.NumCombined,
		Source:      hdr.Source,
		RunID:       hdr.RunID,
		CreatedAt:   hdr.CreatedAt,
		Pixels:      pixels,
	}, nil
}
