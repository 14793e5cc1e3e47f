//go:build !linux

package spe

import "time"

func creationTime(_ string, fallback time.Time) time.Time {
	return fallback
}
