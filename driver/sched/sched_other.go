//go:build !linux

package sched

import (
	"runtime"
	"time"
)

// Gettid returns 0; no portable kernel thread id is available.
func Gettid() int {
	return 0
}

func Yield() {
	runtime.Gosched()
}

func Sleep(nsec int64) {
	if nsec <= 0 {
		return
	}
	time.Sleep(time.Duration(nsec))
}

func NumCPU() int {
	return runtime.NumCPU()
}
