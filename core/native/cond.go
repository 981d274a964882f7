package native

// waitList is the waiter bookkeeping shared by both condition variables. It is
// guarded by the owning condition variable's internal lock.
//
// A notify hands out releases and advances the generation. A waiter may take
// a release only once the generation has moved past the one it enrolled in,
// so a notify never releases a waiter that started waiting after it, and
// every notify issued while a waiter is enrolled and unreleased is honored.
type waitList struct {
	waiters    uint32
	releases   uint32
	generation uint32
}

// enroll registers a new waiter and returns its generation.
func (w *waitList) enroll() uint32 {
	w.waiters++
	return w.generation
}

// consume takes a release for a waiter of generation gen.
func (w *waitList) consume(gen uint32) bool {
	if w.releases == 0 || w.generation == gen {
		return false
	}
	w.releases--
	w.waiters--
	return true
}

// notifyOne reports whether a waiter was released.
func (w *waitList) notifyOne() bool {
	if w.waiters <= w.releases {
		return false
	}
	w.releases++
	w.generation++
	return true
}

// notifyAll reports whether any waiter was released.
func (w *waitList) notifyAll() bool {
	if w.waiters <= w.releases {
		return false
	}
	w.releases = w.waiters
	w.generation++
	return true
}
