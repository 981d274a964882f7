// Package selftest exercises the tthread primitives against their documented
// guarantees at a configurable scale.
package selftest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"example.com/tinythread/core/config"
	"example.com/tinythread/core/metrics"
	"example.com/tinythread/tthread"
	"example.com/tinythread/tthread/chrono"
	"example.com/tinythread/tthread/thisthread"
)

type Result struct {
	Name    string
	Passed  bool
	Detail  string
	Elapsed time.Duration
}

type check struct {
	name string
	run  func(cfg config.Config) error
}

var checks = []check{
	{"mutex exclusion", checkMutexExclusion},
	{"recursive mutex depth", checkRecursiveDepth},
	{"condition variable producer/consumer", checkProducerConsumer},
	{"atomic arithmetic", checkAtomicArithmetic},
	{"atomic flag", checkAtomicFlag},
	{"thread lifecycle", checkThreadLifecycle},
	{"thread identity", checkThreadIdentity},
	{"sleep duration", checkSleep},
}

var selftestMetrics = struct {
	checksRun    prometheus.Counter
	checksFailed prometheus.Counter
}{
	checksRun: promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.SelftestChecksRunN,
		Help: metrics.SelftestChecksRunH,
	}),
	checksFailed: promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.SelftestChecksFailedN,
		Help: metrics.SelftestChecksFailedH,
	}),
}

// Run runs every check in order and returns their results. Checks not yet
// started when ctx is done are reported as failed.
func Run(ctx context.Context, log *zap.Logger, cfg config.Config) []Result {
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Name: c.name, Detail: err.Error()})
			continue
		}
		log.Debug("running check", zap.String("check", c.name))
		t0 := time.Now()
		err := c.run(cfg)
		r := Result{Name: c.name, Passed: err == nil, Elapsed: time.Since(t0)}
		selftestMetrics.checksRun.Inc()
		if err != nil {
			r.Detail = err.Error()
			selftestMetrics.checksFailed.Inc()
			log.Error("check failed", zap.String("check", c.name), zap.Error(err))
		} else {
			log.Info("check passed", zap.String("check", c.name), zap.Duration("elapsed", r.Elapsed))
		}
		results = append(results, r)
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func runThreads(n int, fn func(i int)) {
	threads := make([]*tthread.Thread, n)
	for i := range threads {
		threads[i] = tthread.NewThread(func(arg any) { fn(arg.(int)) }, i)
	}
	for _, t := range threads {
		t.Join()
	}
}

func checkMutexExclusion(cfg config.Config) error {
	for name, m := range map[string]tthread.Locker{
		"mutex":           new(tthread.Mutex),
		"recursive mutex": new(tthread.RecursiveMutex),
		"fast mutex":      new(tthread.FastMutex),
	} {
		counter := 0
		runThreads(cfg.Threads, func(int) {
			for j := 0; j < cfg.Iterations; j++ {
				m.Lock()
				counter++
				m.Unlock()
			}
		})
		if want := cfg.Threads * cfg.Iterations; counter != want {
			return fmt.Errorf("%s: counter = %d, want %d", name, counter, want)
		}
	}
	return nil
}

func checkRecursiveDepth(cfg config.Config) error {
	var m tthread.RecursiveMutex
	for i := 0; i < cfg.RecursionDepth; i++ {
		m.Lock()
	}
	for i := 0; i < cfg.RecursionDepth; i++ {
		var took bool
		runThreads(1, func(int) {
			took = m.TryLock()
			if took {
				m.Unlock()
			}
		})
		if took {
			return fmt.Errorf("lock taken by another thread after %d of %d unlocks", i, cfg.RecursionDepth)
		}
		m.Unlock()
	}
	var took bool
	runThreads(1, func(int) {
		took = m.TryLock()
		if took {
			m.Unlock()
		}
	})
	if !took {
		return fmt.Errorf("lock still held after %d unlocks", cfg.RecursionDepth)
	}
	return nil
}

func checkProducerConsumer(cfg config.Config) error {
	var (
		m        tthread.Mutex
		cond     tthread.ConditionVariable
		count    int
		done     bool
		consumed = make([]int, cfg.Consumers)
	)
	consumers := make([]*tthread.Thread, cfg.Consumers)
	for i := range consumers {
		consumers[i] = tthread.NewThread(func(arg any) {
			i := arg.(int)
			g := tthread.NewLockGuard(&m)
			defer g.Release()
			for {
				for count == 0 && !done {
					cond.Wait(&m)
				}
				if count == 0 {
					return
				}
				count--
				consumed[i]++
			}
		}, i)
	}
	for i := 0; i < cfg.Items; i++ {
		g := tthread.NewLockGuard(&m)
		count++
		cond.NotifyOne()
		g.Release()
	}
	g := tthread.NewLockGuard(&m)
	done = true
	cond.NotifyAll()
	g.Release()
	for _, c := range consumers {
		c.Join()
	}

	total := 0
	for _, n := range consumed {
		total += n
	}
	if total != cfg.Items || count != 0 {
		return fmt.Errorf("consumed %d of %d items, %d left", total, cfg.Items, count)
	}
	return nil
}

func checkAtomicArithmetic(cfg config.Config) error {
	var a tthread.AtomicInt64
	runThreads(cfg.Threads, func(int) {
		for j := 0; j < cfg.Iterations; j++ {
			a.FetchAdd(1)
		}
	})
	if want := int64(cfg.Threads * cfg.Iterations); a.Load() != want {
		return fmt.Errorf("after increments value = %d, want %d", a.Load(), want)
	}
	runThreads(cfg.Threads, func(int) {
		for j := 0; j < cfg.Iterations; j++ {
			a.FetchSub(1)
		}
	})
	if v := a.Load(); v != 0 {
		return fmt.Errorf("after decrements value = %d, want 0", v)
	}
	return nil
}

func checkAtomicFlag(cfg config.Config) error {
	var f tthread.AtomicFlag
	if f.TestAndSet() {
		return fmt.Errorf("new flag is set")
	}
	if !f.TestAndSet() {
		return fmt.Errorf("flag not set after TestAndSet")
	}
	f.Clear()
	if f.TestAndSet() {
		return fmt.Errorf("flag set after Clear")
	}
	f.Clear()

	var winners tthread.AtomicInt
	runThreads(cfg.Threads, func(int) {
		if !f.TestAndSet() {
			winners.FetchAdd(1)
		}
	})
	if n := winners.Load(); n != 1 {
		return fmt.Errorf("%d threads won the flag, want 1", n)
	}
	return nil
}

func checkThreadLifecycle(config.Config) error {
	var zero tthread.Thread
	if zero.Joinable() || zero.ID() != 0 {
		return fmt.Errorf("zero thread is joinable or has an id")
	}
	ran := tthread.NewAtomic[int32](0)
	t := tthread.NewThread(func(any) { ran.Store(1) }, nil)
	if !t.Joinable() {
		return fmt.Errorf("started thread not joinable")
	}
	t.Join()
	if t.Joinable() || ran.Load() != 1 {
		return fmt.Errorf("joined thread still joinable or did not run")
	}
	t = tthread.NewThread(func(any) {}, nil)
	t.Detach()
	if t.Joinable() {
		return fmt.Errorf("detached thread still joinable")
	}
	return nil
}

func checkThreadIdentity(cfg config.Config) error {
	var (
		m       tthread.Mutex
		cond    tthread.ConditionVariable
		release bool
	)
	threads := make([]*tthread.Thread, cfg.Threads)
	ids := make([]tthread.ID, 0, cfg.Threads+1)
	for i := range threads {
		threads[i] = tthread.NewThread(func(any) {
			m.Lock()
			for !release {
				cond.Wait(&m)
			}
			m.Unlock()
		}, nil)
		ids = append(ids, threads[i].ID())
	}
	ids = append(ids, thisthread.GetID())

	m.Lock()
	release = true
	cond.NotifyAll()
	m.Unlock()
	for _, t := range threads {
		t.Join()
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i := 1; i < len(ids); i++ {
		if ids[i-1].Compare(ids[i]) >= 0 {
			return fmt.Errorf("live threads share id %v", ids[i])
		}
	}
	return nil
}

func checkSleep(config.Config) error {
	const want = 10 * time.Millisecond
	t0 := time.Now()
	thisthread.SleepFor(chrono.NewMilliseconds(want.Milliseconds()))
	if d := time.Since(t0); d < want {
		return fmt.Errorf("slept %v, want at least %v", d, want)
	}
	return nil
}
