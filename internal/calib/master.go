package calib

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/tsphot/internal/spe"
)

// Master is a combined calibration frame: the per-pixel mean of every frame
// in one calibration exposure file.
type Master struct {
	ImageType   string
	XDim        int
	YDim        int
	NumCombined int
	Source      string
	RunID       string
	CreatedAt   time.Time
	Pixels      []float64 // row-major, shape (YDim, XDim)
}

// At returns the combined pixel at row y, column x.
func (m *Master) At(y, x int) float64 {
	return m.Pixels[y*m.XDim+x]
}

// BuildMaster opens a calibration SPE file and mean-combines all of its
// frames. The file is expected to be a finished acquisition, but the live
// frame count is honored regardless, so only complete frames contribute.
func BuildMaster(path, imageType string) (*Master, error) {
	f, err := spe.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	frames, err := f.Frames()
	if err != nil {
		return nil, fmt.Errorf("combine %s: %w", imageType, err)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%s: %w", path, spe.ErrNoFrames)
	}
	n := len(frames)

	g := f.Geometry()
	sum := make([]float64, g.PixelsPerFrame)
	for _, fr := range frames {
		for j, v := range fr.Float64s() {
			sum[j] += v
		}
	}
	for j := range sum {
		sum[j] /= float64(n)
	}

	return &Master{
		ImageType:   imageType,
		XDim:        g.XDim,
		YDim:        g.YDim,
		NumCombined: n,
		Source:      path,
		RunID:       uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Pixels:      sum,
	}, nil
}
