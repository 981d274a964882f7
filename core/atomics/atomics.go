// Package atomics provides the 64-bit value cells and 32-bit flags behind
// tthread.Atomic and tthread.AtomicFlag, in three strategies: compiler
// builtins, amd64 assembly and a mutex-guarded emulation.
//
// Every operation is sequentially consistent whatever the strategy. Cell and
// Flag alias the strategy selected at build time.
package atomics

import (
	"sync/atomic"

	"example.com/tinythread/core/native"
)

// BuiltinCell uses the sync/atomic intrinsics.
type BuiltinCell struct {
	v atomic.Uint64
}

func (c *BuiltinCell) Load() uint64             { return c.v.Load() }
func (c *BuiltinCell) Store(v uint64)           { c.v.Store(v) }
func (c *BuiltinCell) Exchange(v uint64) uint64 { return c.v.Swap(v) }

// Add adds delta and returns the previous value.
func (c *BuiltinCell) Add(delta uint64) uint64 { return c.v.Add(delta) - delta }

func (*BuiltinCell) LockFree() bool { return true }

// BuiltinFlag uses the sync/atomic intrinsics.
type BuiltinFlag struct {
	v atomic.Uint32
}

// TestAndSet sets the flag and reports whether it was already set.
func (f *BuiltinFlag) TestAndSet() bool { return f.v.Swap(1) != 0 }
func (f *BuiltinFlag) Clear()           { f.v.Store(0) }
func (*BuiltinFlag) LockFree() bool     { return true }

// MutexCell guards a plain value with a native mutex.
type MutexCell struct {
	mu native.Mutex
	v  uint64
}

func (c *MutexCell) Load() uint64 {
	c.mu.Lock()
	v := c.v
	c.mu.Unlock()
	return v
}

func (c *MutexCell) Store(v uint64) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *MutexCell) Exchange(v uint64) uint64 {
	c.mu.Lock()
	old := c.v
	c.v = v
	c.mu.Unlock()
	return old
}

func (c *MutexCell) Add(delta uint64) uint64 {
	c.mu.Lock()
	old := c.v
	c.v += delta
	c.mu.Unlock()
	return old
}

func (*MutexCell) LockFree() bool { return false }

// MutexFlag guards a plain flag with a native mutex.
type MutexFlag struct {
	mu native.Mutex
	v  bool
}

func (f *MutexFlag) TestAndSet() bool {
	f.mu.Lock()
	old := f.v
	f.v = true
	f.mu.Unlock()
	return old
}

func (f *MutexFlag) Clear() {
	f.mu.Lock()
	f.v = false
	f.mu.Unlock()
}

func (*MutexFlag) LockFree() bool { return false }
