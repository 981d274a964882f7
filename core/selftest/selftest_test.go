package selftest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"example.com/tinythread/core/config"
	"example.com/tinythread/core/selftest"
)

func smallConfig() config.Config {
	return config.Config{
		Threads:        4,
		Iterations:     1_000,
		Consumers:      2,
		Items:          2_000,
		RecursionDepth: 3,
		BenchSamples:   1_000,
	}
}

func TestRun(t *testing.T) {
	results := selftest.Run(context.Background(), zaptest.NewLogger(t), smallConfig())
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.True(t, r.Passed, "%s: %s", r.Name, r.Detail)
	}
	assert.True(t, selftest.Passed(results))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := selftest.Run(ctx, zaptest.NewLogger(t), smallConfig())
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.False(t, r.Passed, r.Name)
		assert.Equal(t, context.Canceled.Error(), r.Detail)
	}
	assert.False(t, selftest.Passed(results))
}
