// Package benchmark measures the latency of the tthread primitives under
// contention.
package benchmark

import (
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"example.com/tinythread/base/floats"

	"example.com/tinythread/core/config"
	"example.com/tinythread/core/metrics"
	"example.com/tinythread/tthread"
)

const (
	minLatency = 1
	maxLatency = int64(time.Second)
	sigFigs    = 3
)

var samplesRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Name: metrics.BenchSamplesN,
	Help: metrics.BenchSamplesH,
})

type target struct {
	name string
	op   func()
}

func targets() []target {
	var (
		m  tthread.Mutex
		rm tthread.RecursiveMutex
		fm tthread.FastMutex
		a  tthread.AtomicUint64
		f  tthread.AtomicFlag
	)
	return []target{
		{"mutex", func() {
			m.Lock()
			m.Unlock()
		}},
		{"recursive_mutex", func() {
			rm.Lock()
			rm.Unlock()
		}},
		{"fast_mutex", func() {
			fm.Lock()
			fm.Unlock()
		}},
		{"lock_guard", func() {
			tthread.NewLockGuard(&m).Release()
		}},
		{"atomic_fetch_add", func() {
			a.FetchAdd(1)
		}},
		{"atomic_flag", func() {
			for f.TestAndSet() {
			}
			f.Clear()
		}},
	}
}

// Run measures every primitive with cfg.Threads threads taking
// cfg.BenchSamples samples in total and writes one latency distribution in
// nanoseconds per primitive to w.
func Run(log *zap.Logger, cfg config.Config, w io.Writer) error {
	for _, t := range targets() {
		hg, err := measure(log, t, cfg.Threads, cfg.BenchSamples)
		if err != nil {
			return fmt.Errorf("benchmark %s: %w", t.name, err)
		}
		log.Info("benchmark finished", zap.String("target", t.name),
			zap.Int64("samples", hg.TotalCount()),
			zap.Float64("mean_ns", hg.Mean()),
			zap.Int64("p99_ns", hg.ValueAtQuantile(99)))
		fmt.Fprintf(w, "# %s (ns)\n", t.name)
		if _, err := hg.PercentilesPrint(w, 1, 1.0); err != nil {
			return fmt.Errorf("benchmark %s: %w", t.name, err)
		}
	}
	return nil
}

func measure(log *zap.Logger, t target, numThreads, numSamples int) (*hdrhistogram.Histogram, error) {
	var (
		mu     tthread.Mutex
		total  = hdrhistogram.New(minLatency, maxLatency, sigFigs)
		errRec error
		means  = make([]float64, 0, numThreads)
	)
	perThread := numSamples / numThreads
	if perThread == 0 {
		perThread = 1
	}

	sg := make(chan struct{})
	threads := make([]*tthread.Thread, numThreads)
	for i := range threads {
		threads[i] = tthread.NewThread(func(any) {
			hg := hdrhistogram.New(minLatency, maxLatency, sigFigs)
			<-sg
			var err error
			for j := perThread; j > 0; j-- {
				t0 := time.Now()
				t.op()
				err = hg.RecordValue(time.Since(t0).Nanoseconds())
				if err != nil {
					break
				}
			}
			g := tthread.NewLockGuard(&mu)
			defer g.Release()
			if err != nil && errRec == nil {
				errRec = err
			}
			means = append(means, hg.Mean())
			if dropped := total.Merge(hg); dropped != 0 {
				log.Debug("dropped samples on merge", zap.Int64("dropped", dropped))
			}
		}, nil)
	}
	t0 := time.Now()
	close(sg)
	for _, th := range threads {
		th.Join()
	}
	log.Debug("benchmark threads joined", zap.String("target", t.name),
		zap.Duration("elapsed", time.Since(t0)),
		zap.Float64("median_thread_mean_ns", floats.Median(means)),
		zap.Float64("thread_mean_spread", floats.RelSpread(means)))
	if errRec != nil {
		return nil, errRec
	}
	samplesRecorded.Add(float64(total.TotalCount()))
	return total, nil
}
