package unixutil

import (
	"golang.org/x/sys/unix"
)

// TimespecFromNsec converts a relative interval in nanoseconds to a timespec
// suitable for nanosleep. Negative intervals are clamped to zero.
func TimespecFromNsec(nsec int64) unix.Timespec {
	if nsec < 0 {
		nsec = 0
	}
	// The field unix.Timespec.Nsec must always be in range [0, 1e9).
	return unix.NsecToTimespec(nsec)
}

// NsecFromTimespec is the inverse of TimespecFromNsec.
func NsecFromTimespec(ts unix.Timespec) int64 {
	return ts.Nano()
}
