package native

import (
	"math/bits"

	"example.com/tinythread/driver/futex"
)

// eventSet is a group of up to 32 wait events sharing one futex word. Bit i of
// the word is set while event i is signaled. Auto-reset events are consumed by
// the waiter they release; manual-reset events stay signaled until reset.
type eventSet struct {
	state futex.Futex
}

func (s *eventSet) set(ev uint32) {
	bit := uint32(1) << ev
	for {
		old := s.state.Load()
		if old&bit != 0 {
			return
		}
		if s.state.CompareAndSwap(old, old|bit) {
			break
		}
	}
	s.state.WakeAll()
}

func (s *eventSet) reset(ev uint32) {
	bit := uint32(1) << ev
	for {
		old := s.state.Load()
		if old&bit == 0 || s.state.CompareAndSwap(old, old&^bit) {
			return
		}
	}
}

// waitAny blocks until one of the events is signaled and returns the lowest
// signaled event. manual is the mask of manual-reset events.
func (s *eventSet) waitAny(manual uint32) uint32 {
	for {
		v := s.state.Load()
		if v == 0 {
			s.state.Wait(0)
			continue
		}
		ev := uint32(bits.TrailingZeros32(v))
		bit := uint32(1) << ev
		if manual&bit != 0 || s.state.CompareAndSwap(v, v&^bit) {
			return ev
		}
	}
}
