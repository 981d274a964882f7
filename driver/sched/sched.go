// Package sched wraps the scheduler facilities of the host OS: thread ids,
// yielding, sleeping and the number of usable hardware threads.
package sched

// The native sleep unit is ResolutionNum/ResolutionDen seconds.
const (
	ResolutionNum = 1
	ResolutionDen = 1_000_000_000
)
