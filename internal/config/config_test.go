package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"bot_api_key", "debug", "default_instance", "preload_instances",
	"cache_ttl", "http_timeout", "worker_count", "input_dir",
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()

	unset := func() {
		for _, k := range envKeys {
			_ = os.Unsetenv(k)
		}
	}
	unset()
	t.Cleanup(unset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	return dir
}

func TestNewConfig(t *testing.T) {
	dir := writeEnv(t, `bot_api_key=123:abc
debug=true
default_instance=fosstodon.org
preload_instances=mastodon.social, fosstodon.org,,
cache_ttl=5m
http_timeout=3s
worker_count=5
`)

	cfg, err := NewConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotApiKey)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "fosstodon.org", cfg.DefaultInstance)
	assert.Equal(t, []string{"mastodon.social", "fosstodon.org"}, cfg.PreloadInstances)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5, cfg.WorkerCount)
	assert.Equal(t, inputDirName, cfg.Paths.Input)
}

func TestNewConfigDefaults(t *testing.T) {
	dir := writeEnv(t, "bot_api_key=123:abc\n")

	cfg, err := NewConfig(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, defaultInstance, cfg.DefaultInstance)
	assert.Empty(t, cfg.PreloadInstances)
	assert.Equal(t, defaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, defaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, defaultWorkerCount, cfg.WorkerCount)
}

func TestNewConfigErrors(t *testing.T) {
	tests := map[string]string{
		"missing key":      "debug=true\n",
		"bad ttl":          "bot_api_key=k\ncache_ttl=soon\n",
		"bad timeout":      "bot_api_key=k\nhttp_timeout=-\n",
		"bad workers":      "bot_api_key=k\nworker_count=many\n",
		"zero workers":     "bot_api_key=k\nworker_count=0\n",
		"negative timeout": "bot_api_key=k\nhttp_timeout=-1s\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := writeEnv(t, content)

			_, err := NewConfig(dir)
			assert.Error(t, err)
		})
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(t.TempDir())
	assert.Error(t, err)
}
