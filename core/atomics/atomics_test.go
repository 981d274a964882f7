package atomics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell interface {
	Load() uint64
	Store(v uint64)
	Exchange(v uint64) uint64
	Add(delta uint64) uint64
	LockFree() bool
}

type flag interface {
	TestAndSet() bool
	Clear()
	LockFree() bool
}

type strategy struct {
	name     string
	lockFree bool
	newCell  func() cell
	newFlag  func() flag
}

var strategies = []strategy{
	{"builtin", true, func() cell { return new(BuiltinCell) }, func() flag { return new(BuiltinFlag) }},
	{"mutex", false, func() cell { return new(MutexCell) }, func() flag { return new(MutexFlag) }},
}

func TestSelectedStrategy(t *testing.T) {
	var c Cell
	var f Flag
	assert.Contains(t, []string{"builtin", "asm", "mutex"}, Strategy)
	assert.Equal(t, Strategy != "mutex", c.LockFree())
	assert.Equal(t, Strategy != "mutex", f.LockFree())
}

func TestCellOperations(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			c := s.newCell()
			assert.Equal(t, s.lockFree, c.LockFree())
			assert.Zero(t, c.Load())

			c.Store(41)
			assert.Equal(t, uint64(41), c.Add(1))
			assert.Equal(t, uint64(42), c.Load())
			assert.Equal(t, uint64(42), c.Exchange(7))
			assert.Equal(t, uint64(7), c.Load())

			// Subtraction is addition of the two's complement.
			var one uint64 = 1
			assert.Equal(t, uint64(7), c.Add(-one))
			assert.Equal(t, uint64(6), c.Load())

			c.Store(0)
			assert.Zero(t, c.Add(-one))
			assert.Equal(t, ^uint64(0), c.Load())
		})
	}
}

func TestCellConcurrentAdd(t *testing.T) {
	const numThreads = 8
	const numIterations = 10_000
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			c := s.newCell()
			var wg sync.WaitGroup
			wg.Add(numThreads)
			for i := 0; i < numThreads; i++ {
				go func() {
					defer wg.Done()
					for j := 0; j < numIterations; j++ {
						c.Add(1)
					}
				}()
			}
			wg.Wait()
			require.Equal(t, uint64(numThreads*numIterations), c.Load())

			var one uint64 = 1
			wg.Add(numThreads)
			for i := 0; i < numThreads; i++ {
				go func() {
					defer wg.Done()
					for j := 0; j < numIterations; j++ {
						c.Add(-one)
					}
				}()
			}
			wg.Wait()
			assert.Zero(t, c.Load())
		})
	}
}

func TestFlag(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			f := s.newFlag()
			assert.Equal(t, s.lockFree, f.LockFree())
			assert.False(t, f.TestAndSet())
			assert.True(t, f.TestAndSet())
			assert.True(t, f.TestAndSet())
			f.Clear()
			assert.False(t, f.TestAndSet())
			f.Clear()
			f.Clear()
			assert.False(t, f.TestAndSet())
		})
	}
}

func TestFlagSingleWinner(t *testing.T) {
	const numThreads = 8
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			f := s.newFlag()
			var wg sync.WaitGroup
			var mu sync.Mutex
			winners := 0
			wg.Add(numThreads)
			for i := 0; i < numThreads; i++ {
				go func() {
					defer wg.Done()
					if !f.TestAndSet() {
						mu.Lock()
						winners++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()
			assert.Equal(t, 1, winners)
		})
	}
}
