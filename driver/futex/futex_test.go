package futex_test

import (
	"sync"
	"testing"
	"time"

	"example.com/tinythread/driver/futex"
)

func TestWaitReturnsOnMismatch(t *testing.T) {
	var f futex.Futex
	f.Store(1)
	done := make(chan struct{})
	go func() {
		f.Wait(0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait blocked although the value did not match")
	}
}

func TestWakeAll(t *testing.T) {
	const n = 8
	var f futex.Futex
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for f.Load() == 0 {
				f.Wait(0)
			}
		}()
	}
	time.Sleep(10 * time.Millisecond)
	f.Store(1)
	f.WakeAll()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("waiters were not woken")
	}
}

func TestWakeOne(t *testing.T) {
	var f futex.Futex
	done := make(chan struct{})
	go func() {
		for f.Load() == 0 {
			f.Wait(0)
		}
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	f.Store(1)
	f.Wake()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("waiter was not woken")
	}
}
