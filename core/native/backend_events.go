//go:build tthread_events || windows

package native

const Name = "events"

type (
	Mutex          = EventMutex
	RecursiveMutex = EventRecursiveMutex
	Cond           = EventCond
)
