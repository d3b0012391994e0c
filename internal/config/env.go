package config

import (
	"fmt"
	"strconv"
	"time"
)

type envBinding struct {
	key string
	set func(string) error
}

func bindings(c *Config) []envBinding {
	return []envBinding{
		{"PLAYBACK_INTERVAL", durationSetter(&c.Playback.Interval)},
		{"PLAYBACK_CHARS_PER_TICK", intSetter(&c.Playback.CharsPerTick)},
		{"PLAYBACK_START_DELAY", durationSetter(&c.Playback.StartDelay)},
		{"PLAYBACK_MAX_DURATION", durationSetter(&c.Playback.MaxDuration)},
		{"PLAYBACK_SETTLE_DELAY", durationSetter(&c.Playback.SettleDelay)},
		{"TOAST_DURATION", durationSetter(&c.Toast.Duration)},
		{"SERVER_ADDR", func(v string) error { c.Server.Addr = v; return nil }},
		{"SERVER_FRAME_INTERVAL", durationSetter(&c.Server.FrameInterval)},
		{"SERVER_SSE_BUFFER", intSetter(&c.Server.SSEBuffer)},
		{"SHELL_MAX_INPUT", intSetter(&c.Shell.MaxInput)},
	}
}

// applyEnv overrides c with TOUR_* variables found through lookup.
func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	for _, b := range bindings(c) {
		name := EnvPrefix + b.key
		val, ok := lookup(name)
		if !ok || val == "" {
			continue
		}
		if err := b.set(val); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func durationSetter(dst *Duration) func(string) error {
	return func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*dst = Duration(d)
		return nil
	}
}

func intSetter(dst *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}
