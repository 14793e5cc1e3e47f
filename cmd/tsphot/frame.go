package main

import (
	"context"
	"fmt"
	"math"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/tsphot/internal/spe"
)

func frameCmd() *cli.Command {
	var index int64

	return &cli.Command{
		Name:  "frame",
		Usage: "Read one frame and print its metadata and pixel statistics",
		Flags: append(append(commonFileFlags(), loggingFlags()...),
			&cli.Int64Flag{
				Name:        "index",
				Aliases:     []string{"i"},
				Usage:       "frame index; negative counts from the end (-1 is the last complete frame)",
				Value:       -1,
				Destination: &index,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyConfig(cmd, LoadConfig(), nil)

			f, err := spe.OpenWith(filePath, spe.OpenOptions{
				TicksPerSecond: ticksPerSecond,
				Logger:         newLogger(),
			})
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			fr, err := f.Frame(int(index))
			if err != nil {
				return err
			}

			n, _ := f.NumFrames()
			fmt.Printf("File: %s\n", filePath)
			fmt.Printf("Frame %d of %d | %dx%d %s\n", fr.Index, n, fr.YDim, fr.XDim, fr.Elem)
			fmt.Printf("  exposure start:  %s\n", fr.Meta.ExposureStart.Format("2006-01-02 15:04:05.000000 MST"))
			fmt.Printf("  exposure end:    %s\n", fr.Meta.ExposureEnd.Format("2006-01-02 15:04:05.000000 MST"))
			fmt.Printf("  tracking number: %d\n", fr.Meta.TrackingNumber)

			minV, maxV, mean := pixelStats(fr.Float64s())
			fmt.Printf("  pixels: min=%g max=%g mean=%.3f\n", minV, maxV, mean)
			return nil
		},
	}
}

func pixelStats(px []float64) (minV, maxV, mean float64) {
	minV = math.Inf(1)
	maxV = math.Inf(-1)
	for _, v := range px {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
		mean += v
	}
	if len(px) > 0 {
		mean /= float64(len(px))
	}
	return minV, maxV, mean
}
