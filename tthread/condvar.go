package tthread

import (
	"sync"

	"example.com/tinythread/core/native"
)

// ConditionVariable lets threads wait until another thread notifies them.
// Waiters may wake spuriously and must re-check their predicate in a loop:
//
//	mu.Lock()
//	for !ready {
//		cond.Wait(&mu)
//	}
//	mu.Unlock()
//
// The zero value is ready to use.
type ConditionVariable struct {
	_ noCopy
	c native.Cond
}

// Wait releases m, which the caller must hold, suspends the calling thread
// until it is notified, and locks m again before returning. Notifications
// issued after m was released are not lost.
func (c *ConditionVariable) Wait(m sync.Locker) { c.c.Wait(m) }

// NotifyOne wakes at most one thread currently blocked in Wait.
func (c *ConditionVariable) NotifyOne() { c.c.NotifyOne() }

// NotifyAll wakes every thread currently blocked in Wait. Threads that start
// waiting afterwards are not affected.
func (c *ConditionVariable) NotifyAll() { c.c.NotifyAll() }
