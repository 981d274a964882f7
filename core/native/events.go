package native

import (
	"sync"
	"sync/atomic"

	"example.com/tinythread/base/goid"
	"example.com/tinythread/driver/sched"
)

// SpinCount is the number of acquisition attempts a critical section makes
// before it waits on its event.
const SpinCount = 64

const lockEvent = 0

// critSec is a critical section: a lock that knows its owning thread and
// spins briefly before it waits on an auto-reset event.
type critSec struct {
	locked    atomic.Uint32
	waiters   atomic.Int32
	owner     atomic.Uint64
	recursion uint32
	ev        eventSet
}

func (cs *critSec) acquire() bool {
	return cs.locked.Load() == 0 && cs.locked.CompareAndSwap(0, 1)
}

// enter takes the critical section. With recursive unset, entering a section
// the caller already owns waits like any other contender and never returns.
func (cs *critSec) enter(recursive bool) {
	self := goid.Get()
	if recursive && cs.owner.Load() == self {
		cs.recursion++
		return
	}
	for i := 0; i < SpinCount; i++ {
		if cs.acquire() {
			cs.own(self)
			return
		}
	}
	cs.waiters.Add(1)
	for !cs.acquire() {
		cs.ev.waitAny(0)
	}
	cs.waiters.Add(-1)
	cs.own(self)
}

func (cs *critSec) tryEnter(recursive bool) bool {
	self := goid.Get()
	if cs.owner.Load() == self {
		if !recursive {
			return false
		}
		cs.recursion++
		return true
	}
	if !cs.acquire() {
		return false
	}
	cs.own(self)
	return true
}

func (cs *critSec) own(self uint64) {
	cs.owner.Store(self)
	cs.recursion = 1
}

func (cs *critSec) leave() {
	self := goid.Get()
	if owner := cs.owner.Load(); owner != self {
		violation("leave of critical section not owned by caller", owner, self)
		return
	}
	cs.recursion--
	if cs.recursion > 0 {
		return
	}
	cs.owner.Store(0)
	cs.locked.Store(0)
	if cs.waiters.Load() > 0 {
		cs.ev.set(lockEvent)
	}
}

// EventMutex is a non-recursive critical section. Re-locking it from the
// owning thread blocks on the section's event instead of re-entering.
type EventMutex struct {
	cs critSec
}

func (m *EventMutex) Lock()         { m.cs.enter(false) }
func (m *EventMutex) TryLock() bool { return m.cs.tryEnter(false) }
func (m *EventMutex) Unlock()       { m.cs.leave() }

// EventRecursiveMutex is a recursive critical section.
type EventRecursiveMutex struct {
	cs critSec
}

func (m *EventRecursiveMutex) Lock()         { m.cs.enter(true) }
func (m *EventRecursiveMutex) TryLock() bool { return m.cs.tryEnter(true) }
func (m *EventRecursiveMutex) Unlock()       { m.cs.leave() }

const (
	releaseEvent = 0
	releaseMask  = uint32(1) << releaseEvent
)

// EventCond is a condition variable built from a waiter list guarded by a
// critical section and a manual-reset release event. The event stays
// signaled while releases are pending; the waiter taking the last one resets
// it.
type EventCond struct {
	events      eventSet
	waitersLock critSec
	list        waitList
}

func (c *EventCond) Wait(m sync.Locker) {
	c.waitersLock.enter(false)
	gen := c.list.enroll()
	c.waitersLock.leave()

	// The event stays signaled until the releases are taken, so a notify
	// issued between the unlock and the wait is not lost.
	m.Unlock()
	for {
		c.events.waitAny(releaseMask)
		c.waitersLock.enter(false)
		released := c.list.consume(gen)
		if released && c.list.releases == 0 {
			c.events.reset(releaseEvent)
		}
		c.waitersLock.leave()
		if released {
			break
		}
		// The pending releases belong to earlier waiters.
		sched.Yield()
	}
	m.Lock()
}

func (c *EventCond) NotifyOne() {
	c.waitersLock.enter(false)
	if c.list.notifyOne() {
		c.events.set(releaseEvent)
	}
	c.waitersLock.leave()
}

func (c *EventCond) NotifyAll() {
	c.waitersLock.enter(false)
	if c.list.notifyAll() {
		c.events.set(releaseEvent)
	}
	c.waitersLock.leave()
}
