package tthread

import "example.com/tinythread/core/atomics"

// AtomicFlag is a boolean with atomic test-and-set and clear. The zero value
// is clear.
type AtomicFlag struct {
	_ noCopy
	f atomics.Flag
}

// NewAtomicFlagValue returns a flag that starts out set if set is true.
func NewAtomicFlagValue(set bool) *AtomicFlag {
	f := new(AtomicFlag)
	if set {
		f.f.TestAndSet()
	}
	return f
}

// TestAndSet sets the flag and returns its previous state.
func (f *AtomicFlag) TestAndSet(order ...MemoryOrder) bool { return f.f.TestAndSet() }

// Clear resets the flag.
func (f *AtomicFlag) Clear(order ...MemoryOrder) { f.f.Clear() }

// IsLockFree reports whether the flag avoids locks, which depends on the
// atomic strategy.
func (f *AtomicFlag) IsLockFree() bool { return f.f.LockFree() }
