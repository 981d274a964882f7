//go:build !linux

package futex

import (
	"sync"
	"unsafe"
)

// Platforms without a futex system call share a fixed table of wait queues
// keyed by address. Wake-ups are broadcast per bucket, which callers observe as
// spurious wake-ups.

const numBuckets = 64

type bucket struct {
	mu   sync.Mutex
	cond sync.Cond
}

var buckets [numBuckets]bucket

func init() {
	for i := range buckets {
		buckets[i].cond.L = &buckets[i].mu
	}
}

func (f *Futex) bucket() *bucket {
	return &buckets[(uintptr(unsafe.Pointer(f))>>2)%numBuckets]
}

func (f *Futex) Wait(cmp uint32) {
	b := f.bucket()
	b.mu.Lock()
	if f.Load() == cmp {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

func (f *Futex) Wake() {
	f.WakeAll()
}

func (f *Futex) WakeAll() {
	b := f.bucket()
	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()
}
