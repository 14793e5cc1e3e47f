// spe_inspect is a minimal standalone dump tool for .spe files, handy when
// the full tsphot CLI is overkill.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/samcharles93/tsphot/internal/spe"
)

func main() {
	showHeader := flag.Bool("header", false, "list all header rows")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: spe_inspect [--header] <path.spe>")
		os.Exit(2)
	}

	path := flag.Arg(0)
	f, err := spe.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	g := f.Geometry()
	n, err := f.NumFrames()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("%dx%d %s | pixels/frame=%d frame=%dB stride=%dB data@%d\n",
		g.YDim, g.XDim, g.Elem, g.PixelsPerFrame, g.BytesPerFrame, g.BytesPerStride, g.StartOffset)
	fmt.Printf("frames available: %d\n", n)

	if _, ok := f.Footer(); ok {
		fmt.Println("footer: present")
	} else {
		fmt.Println("footer: absent")
	}

	if *showHeader {
		fmt.Println()
		for _, hf := range f.Header().Fields {
			if hf.Set() {
				fmt.Printf("  %-20s @%-5d %-4s %g\n", hf.Name, hf.Offset, hf.Binary, hf.Value)
			} else {
				fmt.Printf("  %-20s @%-5d %-4s -\n", hf.Name, hf.Offset, hf.Binary)
			}
		}
	}
}
