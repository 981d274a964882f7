// Package futex provides futex words: 32-bit cells a thread can sleep on until
// another thread wakes it through the same cell.
//
// A futex does not change the underlying value, it only compares it before
// going to sleep to prevent lost wake-ups. Callers must treat every return
// from Wait as potentially spurious and re-check the value.
package futex

import "sync/atomic"

type Futex struct {
	atomic.Uint32
}
