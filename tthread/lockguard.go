package tthread

import "sync"

// LockGuard holds a lock for the duration of a scope:
//
//	g := tthread.NewLockGuard(&mu)
//	defer g.Release()
//
// The zero LockGuard holds nothing and its Release does nothing.
type LockGuard[M sync.Locker] struct {
	m    M
	held bool
}

// NewLockGuard locks m and returns a guard that unlocks it on Release.
func NewLockGuard[M sync.Locker](m M) *LockGuard[M] {
	m.Lock()
	return &LockGuard[M]{m: m, held: true}
}

// Release unlocks the guarded lock. Only the first call has an effect.
func (g *LockGuard[M]) Release() {
	if !g.held {
		return
	}
	g.held = false
	g.m.Unlock()
}
