package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/tinythread/core/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.Equal(t, config.Config{
		Threads:        8,
		Iterations:     10_000,
		Consumers:      2,
		Items:          10_000,
		RecursionDepth: 5,
		BenchSamples:   100_000,
	}, c)
	assert.NoError(t, c.Validate())
}

func TestLoadTOML(t *testing.T) {
	p := writeFile(t, "tt.toml", `
threads = 4
items = 500
metrics_address = "127.0.0.1:9100"
`)
	c, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Threads)
	assert.Equal(t, 500, c.Items)
	assert.Equal(t, "127.0.0.1:9100", c.MetricsAddr)
	assert.Equal(t, config.DefaultIterations, c.Iterations)
	assert.Equal(t, config.DefaultConsumers, c.Consumers)
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "tt.yaml", "consumers: 3\nrecursion_depth: 7\n")
	c, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Consumers)
	assert.Equal(t, 7, c.RecursionDepth)
	assert.Equal(t, config.DefaultThreads, c.Threads)
}

func TestLoadEmptyYAML(t *testing.T) {
	c, err := config.Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name, file, content string
	}{
		{"unknown toml key", "a.toml", "threadz = 3\n"},
		{"unknown yaml key", "a.yaml", "threadz: 3\n"},
		{"bad toml", "b.toml", "threads = \n"},
		{"negative", "c.toml", "threads = -1\n"},
		{"unknown format", "d.json", "{}"},
	} {
		_, err := config.Load(writeFile(t, tc.file, tc.content))
		assert.Error(t, err, tc.name)
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
