//go:build linux

package spe

import (
	"time"

	"golang.org/x/sys/unix"
)

// creationTime returns the file's birth time where the filesystem records
// one, falling back to the inode change time and finally to the caller's
// fallback. Frame timestamps are anchored here, so the closest available
// approximation of "when the acquisition started writing" wins.
func creationTime(path string, fallback time.Time) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME|unix.STATX_CTIME, &stx)
	if err != nil {
		return fallback
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	if stx.Mask&unix.STATX_CTIME != 0 {
		return time.Unix(stx.Ctime.Sec, int64(stx.Ctime.Nsec))
	}
	return fallback
}
