package tthread

import (
	"example.com/tinythread/core/atomics"
	"example.com/tinythread/core/native"
	"example.com/tinythread/driver/sched"
)

// Locker is implemented by Mutex, RecursiveMutex and FastMutex.
type Locker interface {
	Lock()
	TryLock() bool
	Unlock()
}

var (
	_ Locker = (*Mutex)(nil)
	_ Locker = (*RecursiveMutex)(nil)
	_ Locker = (*FastMutex)(nil)
)

// Mutex is a non-recursive mutual exclusion lock. Locking a Mutex that the
// calling thread already holds deadlocks. The zero value is an unlocked Mutex.
type Mutex struct {
	_ noCopy
	m native.Mutex
}

// Lock blocks until the calling thread owns m.
func (m *Mutex) Lock() { m.m.Lock() }

// TryLock takes m if it is free and reports whether it did. It never blocks.
func (m *Mutex) TryLock() bool { return m.m.TryLock() }

// Unlock releases m. Unlocking a Mutex that is not locked is fatal.
func (m *Mutex) Unlock() { m.m.Unlock() }

// RecursiveMutex is a mutual exclusion lock that its owner may lock again.
// Other threads can take it once the owner has called Unlock as many times as
// it called Lock and successful TryLock. The zero value is unlocked.
type RecursiveMutex struct {
	_ noCopy
	m native.RecursiveMutex
}

func (m *RecursiveMutex) Lock()         { m.m.Lock() }
func (m *RecursiveMutex) TryLock() bool { return m.m.TryLock() }

// Unlock releases one level of ownership. Unlocking from a thread that does
// not own m is fatal.
func (m *RecursiveMutex) Unlock() { m.m.Unlock() }

// FastMutex is a lightweight non-recursive lock for short critical sections.
// It spins on an atomic flag and yields the processor between attempts, so it
// never sleeps in the kernel. Unlike Mutex, unlocking a free FastMutex is not
// detected.
type FastMutex struct {
	_    noCopy
	flag atomics.Flag
}

func (m *FastMutex) Lock() {
	for m.flag.TestAndSet() {
		sched.Yield()
	}
}

func (m *FastMutex) TryLock() bool { return !m.flag.TestAndSet() }
func (m *FastMutex) Unlock()       { m.flag.Clear() }
