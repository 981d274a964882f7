package metrics

const (
	ThreadsDetachedH = "The total number of threads detached"
	ThreadsDetachedN = "tinythread_threads_detached"
	ThreadsJoinedH   = "The total number of threads joined"
	ThreadsJoinedN   = "tinythread_threads_joined"
	ThreadsStartedH  = "The total number of threads started"
	ThreadsStartedN  = "tinythread_threads_started"

	SelftestChecksFailedH = "The total number of self-test checks that failed"
	SelftestChecksFailedN = "tinythread_selftest_checks_failed"
	SelftestChecksRunH    = "The total number of self-test checks run"
	SelftestChecksRunN    = "tinythread_selftest_checks_run"

	BenchSamplesH = "The total number of latency samples recorded by benchmarks"
	BenchSamplesN = "tinythread_bench_samples"
)
