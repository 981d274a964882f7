//go:build linux

package futex

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	opWait      = 0
	opWake      = 1
	privateFlag = 128

	maxWaiters = 0x7fff_ffff
)

// Wait atomically checks that the futex still holds cmp and if so, sleeps
// until woken. It may return spuriously.
func (f *Futex) Wait(cmp uint32) {
	// EAGAIN (value changed) and EINTR are both ordinary wake-ups here.
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&f.Uint32)), opWait|privateFlag, uintptr(cmp), 0, 0, 0)
}

// Wake wakes at most one waiter.
func (f *Futex) Wake() {
	f.wake(1)
}

// WakeAll wakes all waiters.
func (f *Futex) WakeAll() {
	f.wake(maxWaiters)
}

func (f *Futex) wake(n uintptr) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&f.Uint32)), opWake|privateFlag, n, 0, 0, 0)
}
