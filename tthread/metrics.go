package tthread

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/tinythread/core/metrics"
)

var threadMetrics = struct {
	started  prometheus.Counter
	joined   prometheus.Counter
	detached prometheus.Counter
}{
	started: promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.ThreadsStartedN,
		Help: metrics.ThreadsStartedH,
	}),
	joined: promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.ThreadsJoinedN,
		Help: metrics.ThreadsJoinedH,
	}),
	detached: promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.ThreadsDetachedN,
		Help: metrics.ThreadsDetachedH,
	}),
}
