package native

import (
	"sync"
	"sync/atomic"

	"example.com/tinythread/base/goid"
	"example.com/tinythread/driver/futex"
)

const (
	unlocked  = 0
	locked    = 1
	contended = 2
)

// PosixMutex is a non-recursive futex mutex. Re-locking it from the owning
// thread blocks forever.
type PosixMutex struct {
	futex futex.Futex
}

func (m *PosixMutex) Lock() {
	// Fast path: try to take an uncontended lock.
	if m.futex.CompareAndSwap(unlocked, locked) {
		return
	}

	// If the swap changed the state from unlocked to contended, we took a
	// contended lock.
	for m.futex.Swap(contended) != unlocked {
		m.futex.Wait(contended)
	}
}

func (m *PosixMutex) TryLock() bool {
	return m.futex.CompareAndSwap(unlocked, locked)
}

func (m *PosixMutex) Unlock() {
	switch m.futex.Swap(unlocked) {
	case unlocked:
		violation("unlock of unlocked mutex", 0, goid.Get())
	case contended:
		m.futex.Wake()
	}
}

// PosixRecursiveMutex is a PosixMutex that the owning thread may lock again.
// It becomes available to other threads after as many Unlock calls as there
// were Lock calls.
type PosixRecursiveMutex struct {
	m     PosixMutex
	owner atomic.Uint64
	count uint32
}

func (m *PosixRecursiveMutex) Lock() {
	self := goid.Get()
	if m.owner.Load() == self {
		m.count++
		return
	}
	m.m.Lock()
	m.owner.Store(self)
	m.count = 1
}

func (m *PosixRecursiveMutex) TryLock() bool {
	self := goid.Get()
	if m.owner.Load() == self {
		m.count++
		return true
	}
	if !m.m.TryLock() {
		return false
	}
	m.owner.Store(self)
	m.count = 1
	return true
}

func (m *PosixRecursiveMutex) Unlock() {
	self := goid.Get()
	if owner := m.owner.Load(); owner != self {
		violation("unlock of recursive mutex not owned by caller", owner, self)
		return
	}
	m.count--
	if m.count > 0 {
		return
	}
	m.owner.Store(0)
	m.m.Unlock()
}

// PosixCond is a condition variable on a futex sequence counter. Every notify
// that releases a waiter bumps the counter and wakes all sleepers, which then
// check under the internal lock whether a release is theirs.
type PosixCond struct {
	mu   PosixMutex
	list waitList
	seq  futex.Futex
}

func (c *PosixCond) Wait(m sync.Locker) {
	c.mu.Lock()
	gen := c.list.enroll()
	c.mu.Unlock()

	m.Unlock()
	for {
		seq := c.seq.Load()
		c.mu.Lock()
		released := c.list.consume(gen)
		c.mu.Unlock()
		if released {
			break
		}
		c.seq.Wait(seq)
	}
	m.Lock()
}

func (c *PosixCond) NotifyOne() {
	c.mu.Lock()
	released := c.list.notifyOne()
	if released {
		c.seq.Add(1)
	}
	c.mu.Unlock()
	if released {
		c.seq.WakeAll()
	}
}

func (c *PosixCond) NotifyAll() {
	c.mu.Lock()
	released := c.list.notifyAll()
	if released {
		c.seq.Add(1)
	}
	c.mu.Unlock()
	if released {
		c.seq.WakeAll()
	}
}
