package tthread

import "example.com/tinythread/core/atomics"

// Integer is the set of types Atomic can hold.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Atomic is an integer with atomic load, store, exchange and fetch-and-add.
// Arithmetic wraps around like plain Go arithmetic on T. The zero value
// holds 0.
type Atomic[T Integer] struct {
	_ noCopy
	c atomics.Cell
}

// NewAtomic returns an Atomic holding v.
func NewAtomic[T Integer](v T) *Atomic[T] {
	a := new(Atomic[T])
	a.c.Store(uint64(v))
	return a
}

func (a *Atomic[T]) Load(order ...MemoryOrder) T          { return T(a.c.Load()) }
func (a *Atomic[T]) Store(v T, order ...MemoryOrder)      { a.c.Store(uint64(v)) }
func (a *Atomic[T]) Exchange(v T, order ...MemoryOrder) T { return T(a.c.Exchange(uint64(v))) }

// FetchAdd adds delta and returns the previous value.
func (a *Atomic[T]) FetchAdd(delta T, order ...MemoryOrder) T {
	return T(a.c.Add(uint64(delta)))
}

// FetchSub subtracts delta and returns the previous value.
func (a *Atomic[T]) FetchSub(delta T, order ...MemoryOrder) T {
	return T(a.c.Add(-uint64(delta)))
}

// IsLockFree reports whether the value avoids locks, which depends on the
// atomic strategy.
func (a *Atomic[T]) IsLockFree() bool { return a.c.LockFree() }

// Set stores v and returns it.
func (a *Atomic[T]) Set(v T) T {
	a.Store(v)
	return v
}

// Value loads the current value.
func (a *Atomic[T]) Value() T { return a.Load() }

// PostIncrement adds one and returns the new value.
func (a *Atomic[T]) PostIncrement() T { return a.FetchAdd(1) + 1 }

// PreIncrement adds one and returns the value before the increment.
func (a *Atomic[T]) PreIncrement() T { return a.FetchAdd(1) }

// PostDecrement subtracts one and returns the new value.
func (a *Atomic[T]) PostDecrement() T { return a.FetchSub(1) - 1 }

// PreDecrement subtracts one and returns the value before the decrement.
func (a *Atomic[T]) PreDecrement() T { return a.FetchSub(1) }

type (
	AtomicInt     = Atomic[int]
	AtomicInt8    = Atomic[int8]
	AtomicInt16   = Atomic[int16]
	AtomicInt32   = Atomic[int32]
	AtomicInt64   = Atomic[int64]
	AtomicUint    = Atomic[uint]
	AtomicUint8   = Atomic[uint8]
	AtomicUint16  = Atomic[uint16]
	AtomicUint32  = Atomic[uint32]
	AtomicUint64  = Atomic[uint64]
	AtomicUintptr = Atomic[uintptr]
)
