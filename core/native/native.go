// Package native implements the two lock and condition backend families.
//
// The posix family mirrors the pthread model: a futex-word mutex, a recursive
// mutex layered on it with an owner and a count, and a sequence-counter
// condition variable.
//
// The events family mirrors the kernel critical section model: locks track
// their owning thread and spin briefly before waiting on an auto-reset event,
// and the condition variable wakes its waiters through a manual-reset release
// event.
//
// Both condition variables release exactly the waiters a notify is owed:
// NotifyOne wakes one thread that was waiting when it was called and NotifyAll
// wakes all of them.
//
// Both families are always compiled. Mutex, RecursiveMutex and Cond alias the
// family selected at build time; see backend_posix.go and backend_events.go.
package native

import (
	"sync"

	"go.uber.org/zap"

	"example.com/tinythread/base/logbase"
	"example.com/tinythread/base/zaplog"
)

// Locker is the capability shared by all mutex types.
type Locker interface {
	sync.Locker
	TryLock() bool
}

// Condition is the capability shared by all condition variable types. Wait
// must be called with m locked by the caller.
type Condition interface {
	Wait(m sync.Locker)
	NotifyOne()
	NotifyAll()
}

var (
	_ Locker = (*PosixMutex)(nil)
	_ Locker = (*PosixRecursiveMutex)(nil)
	_ Locker = (*EventMutex)(nil)
	_ Locker = (*EventRecursiveMutex)(nil)

	_ Condition = (*PosixCond)(nil)
	_ Condition = (*EventCond)(nil)
)

func violation(msg string, owner, caller uint64) {
	logbase.Fatal(zaplog.Logger(), msg,
		zap.String("backend", Name),
		zap.Uint64("owner", owner),
		zap.Uint64("caller", caller))
}
