package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/tsphot/internal/calib"
)

func calibrateCmd() *cli.Command {
	var (
		configFile string
		rereduce   bool
	)

	return &cli.Command{
		Name:  "calibrate",
		Usage: "Build or load master calibration frames from a pipeline config",
		Flags: append(loggingFlags(),
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to the pipeline JSON config",
				Destination: &configFile,
				Required:    true,
			},
			&cli.BoolFlag{
				Name:        "rereduce",
				Usage:       "rebuild all masters, overwriting persisted artifacts",
				Destination: &rereduce,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyConfig(cmd, LoadConfig(), nil)
			log := newLogger()

			cfg, err := calib.LoadConfig(configFile)
			if err != nil {
				return err
			}
			p := &calib.Pipeline{Config: cfg, Rereduce: rereduce, Log: log}
			masters, err := p.Run()
			if err != nil {
				return err
			}

			for imtype, m := range masters {
				fmt.Printf("%-5s %dx%d combined=%d run=%s\n",
					imtype, m.YDim, m.XDim, m.NumCombined, m.RunID)
			}
			return nil
		},
	}
}
