//go:build linux

package sema

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

type Semaphore struct {
	fd     int
	closed atomic.Bool
}

func New(initval uint) (*Semaphore, error) {
	fd, err := unix.Eventfd(initval, unix.EFD_SEMAPHORE|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("sema: eventfd failed: %w", err)
	}
	return &Semaphore{fd: fd}, nil
}

func (s *Semaphore) Acquire() error {
	if s.closed.Load() {
		return errClosed
	}
	val := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	for {
		n, err := unix.Read(s.fd, val)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("sema: read failed: %w", err)
		}
		if n != 8 ||
			val[0] != 1 || val[1] != 0 || val[2] != 0 || val[3] != 0 ||
			val[4] != 0 || val[5] != 0 || val[6] != 0 || val[7] != 0 {
			return fmt.Errorf("sema: unexpected read of %d bytes", n)
		}
		return nil
	}
}

func (s *Semaphore) Release() error {
	if s.closed.Load() {
		return errClosed
	}
	val := []byte{1, 0, 0, 0, 0, 0, 0, 0}
	for {
		n, err := unix.Write(s.fd, val)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("sema: write failed: %w", err)
		}
		if n != len(val) {
			return fmt.Errorf("sema: unexpected write of %d bytes", n)
		}
		return nil
	}
}

func (s *Semaphore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return errClosed
	}
	return unix.Close(s.fd)
}
