//go:build linux

package sched

import (
	"runtime"

	"golang.org/x/sys/unix"

	"example.com/tinythread/base/unixutil"
)

// Gettid returns the kernel id of the calling OS thread.
func Gettid() int {
	return unix.Gettid()
}

// Yield lets other goroutines run and then offers the OS thread to the kernel
// scheduler, which matters for goroutines locked to their thread.
func Yield() {
	runtime.Gosched()
	_, _, _ = unix.Syscall(unix.SYS_SCHED_YIELD, 0, 0, 0)
}

// Sleep blocks the calling thread for at least nsec nanoseconds.
func Sleep(nsec int64) {
	if nsec <= 0 {
		return
	}
	ts := unixutil.TimespecFromNsec(nsec)
	for {
		var rem unix.Timespec
		err := unix.Nanosleep(&ts, &rem)
		if err != unix.EINTR {
			return
		}
		ts = rem
	}
}

// NumCPU returns the number of CPUs the process may run on.
func NumCPU() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	n := set.Count()
	if n == 0 {
		return runtime.NumCPU()
	}
	return n
}
