// Package thisthread operates on the calling thread.
package thisthread

import (
	"example.com/tinythread/base/goid"
	"example.com/tinythread/driver/sched"
	"example.com/tinythread/tthread"
	"example.com/tinythread/tthread/chrono"
)

// GetID returns the identity of the calling thread.
func GetID() tthread.ID {
	return tthread.ID(goid.Get())
}

// Yield offers the processor to other runnable threads.
func Yield() {
	sched.Yield()
}

// SleepFor blocks the calling thread for at least d, rounded to the native
// sleep resolution. It returns at once if d is not positive.
func SleepFor[R chrono.Rep, P chrono.Period](d chrono.Duration[R, P]) {
	sched.Sleep(d.In(chrono.Ratio{Num: sched.ResolutionNum, Den: sched.ResolutionDen}))
}
