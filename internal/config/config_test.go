package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 20*time.Millisecond, cfg.Playback.Interval.Std())
	assert.Equal(t, 2*time.Second, cfg.Toast.Duration.Std())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
playback:
  interval: 10ms
  chars_per_tick: 4
server:
  addr: ":9000"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.Playback.Interval.Std())
	assert.Equal(t, 4, cfg.Playback.CharsPerTick)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, Default().Playback.SettleDelay, cfg.Playback.SettleDelay, "unset keys keep defaults")
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"toast":{"duration":"500ms"},"shell":{"max_input":64}}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Toast.Duration.Std())
	assert.Equal(t, 64, cfg.Shell.MaxInput)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte("playback:\n  chars_per_tick: 0\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "chars_per_tick")

	require.NoError(t, os.WriteFile(path, []byte("playback:\n  interval: soon\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TOUR_SERVER_ADDR":         "127.0.0.1:7000",
		"TOUR_PLAYBACK_INTERVAL":   "5ms",
		"TOUR_SHELL_MAX_INPUT":     "32",
		"TOUR_SERVER_SSE_BUFFER":   "",
		"UNRELATED_PLAYBACK_STUFF": "x",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, applyEnv(&cfg, lookup))
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Millisecond, cfg.Playback.Interval.Std())
	assert.Equal(t, 32, cfg.Shell.MaxInput)
	assert.Equal(t, Default().Server.SSEBuffer, cfg.Server.SSEBuffer)

	env["TOUR_SHELL_MAX_INPUT"] = "lots"
	assert.ErrorContains(t, applyEnv(&cfg, lookup), "TOUR_SHELL_MAX_INPUT")
}

func TestOptionsAreWired(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.StreamOptions(), 4)
	assert.Len(t, cfg.PlaybackOptions(), 2)
}
