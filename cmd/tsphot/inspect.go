package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/tsphot/internal/spe"
)

func inspectCmd() *cli.Command {
	var showAll bool

	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect the header, geometry and footer of an .spe file",
		Flags: append(append(commonFileFlags(), loggingFlags()...),
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "list every header row, not just the fields with values",
				Destination: &showAll,
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

			g := f.Geometry()
			n, err := f.NumFrames()
			if err != nil {
				return err
			}

			fmt.Printf("File: %s\n", filePath)
			fmt.Printf("SPE %dx%d %s | frame=%dB stride=%dB data@%d | frames=%d\n",
				g.YDim, g.XDim, g.Elem, g.BytesPerFrame, g.BytesPerStride, g.StartOffset, n)

			if footer, ok := f.Footer(); ok {
				fmt.Printf("Footer: <%s>\n", footer.Root.XMLName.Local)
			} else {
				fmt.Println("Footer: absent")
			}

			fmt.Println()
			fmt.Println("Header fields:")
			for _, hf := range f.Header().Fields {
				if hf.Set() {
					fmt.Printf("  %-20s @%-5d %-4s %g\n", hf.Name, hf.Offset, hf.Binary, hf.Value)
				} else if showAll {
					fmt.Printf("  %-20s @%-5d %-4s -\n", hf.Name, hf.Offset, hf.Binary)
				}
			}
			return nil
		},
	}
}
