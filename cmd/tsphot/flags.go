package main

import (
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/tsphot/internal/logger"
)

var (
	filePath       string
	logLevel       string
	logFormat      string
	ticksPerSecond int64
)

func commonFileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "path to .spe file",
			Destination: &filePath,
			Required:    true,
		},
		&cli.Int64Flag{
			Name:        "ticks-per-second",
			Usage:       "timestamp counter rate of the acquisition hardware",
			Destination: &ticksPerSecond,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "debug, info, warn or error",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "pretty or json",
			Value:       "pretty",
			Destination: &logFormat,
		},
	}
}

func newLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	if logFormat == "json" {
		return logger.JSON(os.Stderr, level)
	}
	return logger.Pretty(os.Stderr, level)
}
