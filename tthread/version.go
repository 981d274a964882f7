package tthread

import (
	"example.com/tinythread/core/atomics"
	"example.com/tinythread/core/native"
)

const (
	VersionMajor = 1
	VersionMinor = 2

	// Version is VersionMajor*100 + VersionMinor.
	Version = VersionMajor*100 + VersionMinor
)

const (
	// NativeBackend names the lock and condition backend family, "posix" or
	// "events".
	NativeBackend = native.Name

	// AtomicStrategy names the atomic strategy, "builtin", "asm" or "mutex".
	AtomicStrategy = atomics.Strategy
)
