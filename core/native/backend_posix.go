//go:build !tthread_events && !windows

package native

const Name = "posix"

type (
	Mutex          = PosixMutex
	RecursiveMutex = PosixRecursiveMutex
	Cond           = PosixCond
)
