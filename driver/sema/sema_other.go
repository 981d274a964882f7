//go:build !linux

package sema

import (
	"sync"
)

type Semaphore struct {
	mu     sync.Mutex
	cond   sync.Cond
	count  uint
	closed bool
}

func New(initval uint) (*Semaphore, error) {
	s := &Semaphore{count: initval}
	s.cond.L = &s.mu
	return s, nil
}

func (s *Semaphore) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.count == 0 && !s.closed {
		s.cond.Wait()
	}
	if s.closed {
		return errClosed
	}
	s.count--
	return nil
}

func (s *Semaphore) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}
	s.count++
	s.cond.Signal()
	return nil
}

func (s *Semaphore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}
	s.closed = true
	s.cond.Broadcast()
	return nil
}
