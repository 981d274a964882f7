package tthread_test

import (
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"example.com/tinythread/base/goid"
	"example.com/tinythread/base/logbase"
	"example.com/tinythread/base/zaplog"
	"example.com/tinythread/tthread"
)

func TestZeroThread(t *testing.T) {
	var th tthread.Thread
	assert.False(t, th.Joinable())
	assert.Equal(t, tthread.ID(0), th.ID())
	assert.Zero(t, th.NativeHandle())
	th.Close()
}

func TestThreadJoin(t *testing.T) {
	var got any
	var inside tthread.ID
	th := tthread.NewThread(func(arg any) {
		got = arg
		inside = tthread.ID(goid.Get())
	}, "hello")
	require.True(t, th.Joinable())
	id := th.ID()
	assert.NotEqual(t, tthread.ID(0), id)
	if runtime.GOOS == "linux" {
		assert.NotZero(t, th.NativeHandle())
	}

	th.Join()
	assert.Equal(t, "hello", got)
	assert.Equal(t, id, inside)
	assert.False(t, th.Joinable())
	assert.Equal(t, tthread.ID(0), th.ID())
	assert.Zero(t, th.NativeHandle())
	th.Close()
}

func TestThreadDetach(t *testing.T) {
	var m tthread.Mutex
	var cond tthread.ConditionVariable
	finished := false

	th := tthread.NewThread(func(any) {
		m.Lock()
		finished = true
		cond.NotifyAll()
		m.Unlock()
	}, nil)
	th.Detach()
	assert.False(t, th.Joinable())
	assert.Equal(t, tthread.ID(0), th.ID())
	th.Close()

	m.Lock()
	for !finished {
		cond.Wait(&m)
	}
	m.Unlock()
}

func TestThreadJoinAfterExit(t *testing.T) {
	var done tthread.AtomicInt
	th := tthread.NewThread(func(any) { done.Store(1) }, nil)
	for done.Load() == 0 {
		runtime.Gosched()
	}
	assert.True(t, th.Joinable(), "a finished thread stays joinable until joined")
	th.Join()
}

func TestThreadRunsOnOwnOSThread(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("kernel thread ids are only available on linux")
	}
	handles := make([]int, numThreads)
	var m tthread.Mutex
	var cond tthread.ConditionVariable
	release := false

	threads := make([]*tthread.Thread, numThreads)
	for i := range threads {
		threads[i] = tthread.NewThread(func(any) {
			m.Lock()
			for !release {
				cond.Wait(&m)
			}
			m.Unlock()
		}, nil)
		handles[i] = threads[i].NativeHandle()
	}

	seen := map[int]bool{}
	for _, h := range handles {
		assert.False(t, seen[h], "two live threads share kernel thread %d", h)
		seen[h] = true
	}

	m.Lock()
	release = true
	cond.NotifyAll()
	m.Unlock()
	for _, th := range threads {
		th.Join()
	}
}

func TestThreadIdentityOrdering(t *testing.T) {
	var m tthread.Mutex
	var cond tthread.ConditionVariable
	release := false

	threads := make([]*tthread.Thread, numThreads)
	ids := make([]tthread.ID, numThreads)
	byID := map[tthread.ID]int{}
	for i := range threads {
		threads[i] = tthread.NewThread(func(any) {
			m.Lock()
			for !release {
				cond.Wait(&m)
			}
			m.Unlock()
		}, nil)
		ids[i] = threads[i].ID()
		byID[ids[i]] = i
	}
	assert.Len(t, byID, numThreads, "concurrently live threads share an ID")

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i := 1; i < len(ids); i++ {
		assert.Equal(t, -1, ids[i-1].Compare(ids[i]))
		assert.Equal(t, 1, ids[i].Compare(ids[i-1]))
		assert.Equal(t, 0, ids[i].Compare(ids[i]))
	}

	m.Lock()
	release = true
	cond.NotifyAll()
	m.Unlock()
	for _, th := range threads {
		th.Join()
	}
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "none", tthread.ID(0).String())
	assert.Equal(t, "42", tthread.ID(42).String())
}

func TestHardwareConcurrency(t *testing.T) {
	assert.GreaterOrEqual(t, tthread.HardwareConcurrency(), 1)
}

func TestThreadContractViolations(t *testing.T) {
	t.Run("join not joinable", func(t *testing.T) {
		var th tthread.Thread
		expectFatal(t, th.Join)
	})
	t.Run("detach not joinable", func(t *testing.T) {
		var th tthread.Thread
		expectFatal(t, th.Detach)
	})
	t.Run("join twice", func(t *testing.T) {
		th := tthread.NewThread(func(any) {}, nil)
		th.Join()
		expectFatal(t, th.Join)
	})
	t.Run("close joinable", func(t *testing.T) {
		th := tthread.NewThread(func(any) {}, nil)
		expectFatal(t, th.Close)
		th.Join()
	})
	t.Run("nil function", func(t *testing.T) {
		expectFatal(t, func() { tthread.NewThread(nil, nil) })
	})
	t.Run("join self", func(t *testing.T) {
		var m tthread.Mutex
		var th *tthread.Thread
		checked := make(chan struct{})
		m.Lock()
		th = tthread.NewThread(func(any) {
			defer close(checked)
			m.Lock()
			self := th
			m.Unlock()
			expectFatal(t, self.Join)
		}, nil)
		m.Unlock()
		<-checked
		th.Join()
	})
}

func TestThreadPanicIsFatal(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	zaplog.SetLogger(zap.New(core))
	defer zaplog.SetLogger(nil)

	codes := make(chan int, 1)
	restore := logbase.SetExit(func(code int) { codes <- code })
	defer restore()

	th := tthread.NewThread(func(any) { panic("boom") }, nil)
	th.Join()

	assert.Equal(t, logbase.ExitCode, <-codes)
	entries := logs.FilterMessage("panic in thread function").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
}

//go:noinline
func startAndDrop() {
	tthread.NewThread(func(any) {}, nil)
}

func TestUnreachableJoinableThreadIsFatal(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	zaplog.SetLogger(zap.New(core))
	defer zaplog.SetLogger(nil)

	codes := make(chan int, 1)
	restore := logbase.SetExit(func(code int) {
		select {
		case codes <- code:
		default:
		}
	})
	defer restore()

	startAndDrop()
	deadline := time.After(10 * time.Second)
	for {
		runtime.GC()
		select {
		case code := <-codes:
			assert.Equal(t, logbase.ExitCode, code)
			assert.Equal(t, 1, logs.FilterMessage("joinable thread was garbage collected").Len())
			return
		case <-deadline:
			t.Fatal("garbage collecting a joinable thread was not fatal")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestUnreachableJoinedThreadIsNotFatal(t *testing.T) {
	codes := make(chan int, 1)
	restore := logbase.SetExit(func(code int) {
		select {
		case codes <- code:
		default:
		}
	})
	defer restore()

	func() {
		th := tthread.NewThread(func(any) {}, nil)
		th.Join()
	}()
	for i := 0; i < 5; i++ {
		runtime.GC()
	}
	select {
	case <-codes:
		t.Fatal("garbage collecting a joined thread was fatal")
	case <-time.After(50 * time.Millisecond):
	}
}
