package tthread

import (
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"example.com/tinythread/base/goid"
	"example.com/tinythread/base/logbase"
	"example.com/tinythread/base/zaplog"
	"example.com/tinythread/driver/sched"
	"example.com/tinythread/driver/sema"
)

// Thread is a handle to an OS thread running a function. A Thread is
// joinable from NewThread until Join or Detach; the zero Thread has no
// associated thread and is not joinable.
//
// Exactly one of Join or Detach must be called on every started Thread.
// Calling either on a Thread that is not joinable, joining the calling
// thread, calling Close on a joinable Thread and dropping the last reference
// to a joinable Thread are fatal.
type Thread struct {
	_ noCopy

	// lifecycle is held for the duration of Join, Detach and Close. Those
	// must not be called concurrently on one Thread.
	lifecycle sync.Mutex

	mu  Mutex
	ctx *threadContext
	id  ID
	tid int
}

// threadContext is shared by the running thread and its Thread handle. The
// last of the two to let go closes the exit semaphore.
type threadContext struct {
	fn   func(arg any)
	arg  any
	exit *sema.Semaphore
	done atomic.Bool
	refs atomic.Int32
}

func (c *threadContext) release() {
	if c.refs.Add(-1) != 0 {
		return
	}
	if err := c.exit.Close(); err != nil {
		zaplog.Logger().Error("failed to close thread exit semaphore", zap.Error(err))
	}
}

type threadStart struct {
	id  ID
	tid int
}

// NewThread starts fn(arg) on a new OS thread. The thread exits when fn
// returns; a panic escaping fn is fatal.
func NewThread(fn func(arg any), arg any) *Thread {
	log := zaplog.Logger()
	if fn == nil {
		logbase.Fatal(log, "thread function is nil")
	}
	exit, err := sema.New(0)
	if err != nil {
		logbase.Fatal(log, "failed to create thread", zap.Error(err))
	}
	ctx := &threadContext{fn: fn, arg: arg, exit: exit}
	ctx.refs.Store(2)

	started := make(chan threadStart, 1)
	go run(ctx, started)
	s := <-started

	threadMetrics.started.Inc()
	t := &Thread{ctx: ctx, id: s.id, tid: s.tid}
	runtime.SetFinalizer(t, (*Thread).finalize)
	return t
}

// finalize reports a Thread that became unreachable while still joinable.
// Its thread can no longer be joined and its exit semaphore is never closed.
func (t *Thread) finalize() {
	if id := t.ID(); t.Joinable() {
		logbase.Fatal(zaplog.Logger(), "joinable thread was garbage collected", zap.Stringer("id", id))
	}
}

func run(ctx *threadContext, started chan<- threadStart) {
	// The goroutine keeps its OS thread to itself and never unlocks it, so the
	// OS thread terminates together with the goroutine.
	runtime.LockOSThread()

	self := ID(goid.Get())
	tid := sched.Gettid()
	started <- threadStart{id: self, tid: tid}

	log := zaplog.Logger().With(zap.Stringer("id", self), zap.Int("tid", tid))
	log.Debug("thread started")
	defer func() {
		if r := recover(); r != nil {
			logbase.Fatal(log, "panic in thread function",
				zap.Any("panic", r), zap.StackSkip("stack", 2))
		}
		log.Debug("thread exited")
		ctx.done.Store(true)
		if err := ctx.exit.Release(); err != nil {
			logbase.Fatal(log, "failed to signal thread exit", zap.Error(err))
		}
		ctx.release()
	}()
	ctx.fn(ctx.arg)
}

// Joinable reports whether t has an associated thread that has been neither
// joined nor detached.
func (t *Thread) Joinable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx != nil
}

// ID returns the identity of the associated thread, or the zero ID if t is
// not joinable.
func (t *Thread) ID() ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id
}

// NativeHandle returns the kernel thread id of the associated thread, or 0 if
// t is not joinable.
func (t *Thread) NativeHandle() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tid
}

// take dissociates t from its thread and returns the thread's context.
func (t *Thread) take() (*threadContext, ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctx, id := t.ctx, t.id
	t.ctx, t.id, t.tid = nil, 0, 0
	return ctx, id
}

// Join blocks until the associated thread has finished. Afterwards t is no
// longer joinable.
func (t *Thread) Join() {
	if !t.lifecycle.TryLock() {
		logbase.Fatal(zaplog.Logger(), "inconsistent synchronization of thread lifecycle")
	}
	defer t.lifecycle.Unlock()

	if id := t.ID(); id == ID(goid.Get()) && id != 0 {
		logbase.Fatal(zaplog.Logger(), "thread joining itself", zap.Stringer("id", id))
	}
	ctx, id := t.take()
	if ctx == nil {
		logbase.Fatal(zaplog.Logger(), "join of non-joinable thread")
		return
	}
	if err := ctx.exit.Acquire(); err != nil {
		logbase.Fatal(zaplog.Logger(), "failed to join thread", zap.Stringer("id", id), zap.Error(err))
	}
	if !ctx.done.Load() {
		logbase.Fatal(zaplog.Logger(), "join returned before thread exit", zap.Stringer("id", id))
	}
	ctx.release()

	threadMetrics.joined.Inc()
	zaplog.Logger().Debug("thread joined", zap.Stringer("id", id))
}

// Detach lets the associated thread run on independently. Its resources are
// released when it finishes. Afterwards t is no longer joinable.
func (t *Thread) Detach() {
	if !t.lifecycle.TryLock() {
		logbase.Fatal(zaplog.Logger(), "inconsistent synchronization of thread lifecycle")
	}
	defer t.lifecycle.Unlock()

	ctx, id := t.take()
	if ctx == nil {
		logbase.Fatal(zaplog.Logger(), "detach of non-joinable thread")
		return
	}
	ctx.release()

	threadMetrics.detached.Inc()
	zaplog.Logger().Debug("thread detached", zap.Stringer("id", id))
}

// Close checks that t has been joined or detached. Closing a joinable Thread
// is fatal.
func (t *Thread) Close() {
	if !t.lifecycle.TryLock() {
		logbase.Fatal(zaplog.Logger(), "inconsistent synchronization of thread lifecycle")
	}
	defer t.lifecycle.Unlock()

	if id := t.ID(); t.Joinable() {
		logbase.Fatal(zaplog.Logger(), "close of joinable thread", zap.Stringer("id", id))
	}
}

// HardwareConcurrency returns the number of threads that can run truly in
// parallel in this process.
func HardwareConcurrency() int {
	return sched.NumCPU()
}
