// Package config loads tour settings from a YAML or JSON file and TOUR_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/terminaltour/pkg/notify"
	"github.com/aretw0/terminaltour/pkg/playback"
	"github.com/aretw0/terminaltour/pkg/shell"
	"github.com/aretw0/terminaltour/pkg/stream"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. TOUR_SERVER_ADDR.
const EnvPrefix = "TOUR_"

// Duration is a time.Duration written as "20ms" / "2s" in config files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type PlaybackConfig struct {
	Interval     Duration `yaml:"interval" json:"interval"`
	CharsPerTick int      `yaml:"chars_per_tick" json:"chars_per_tick"`
	StartDelay   Duration `yaml:"start_delay" json:"start_delay"`
	MaxDuration  Duration `yaml:"max_duration" json:"max_duration"`
	SettleDelay  Duration `yaml:"settle_delay" json:"settle_delay"`
}

type ToastConfig struct {
	Duration Duration `yaml:"duration" json:"duration"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`

	// FrameInterval is how often a widget session advances its clock and pushes a frame.
	FrameInterval Duration `yaml:"frame_interval" json:"frame_interval"`

	// SSEBuffer is the number of frames queued per subscriber before frames are dropped.
	SSEBuffer int `yaml:"sse_buffer" json:"sse_buffer"`
}

type ShellConfig struct {
	MaxInput int `yaml:"max_input" json:"max_input"`
}

// Config is the complete set of tour settings.
type Config struct {
	Playback PlaybackConfig `yaml:"playback" json:"playback"`
	Toast    ToastConfig    `yaml:"toast" json:"toast"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Shell    ShellConfig    `yaml:"shell" json:"shell"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Playback: PlaybackConfig{
			Interval:     Duration(stream.DefaultInterval),
			CharsPerTick: stream.DefaultCharsPerTick,
			MaxDuration:  Duration(stream.DefaultMaxDuration),
			SettleDelay:  Duration(playback.DefaultSettleDelay),
		},
		Toast: ToastConfig{Duration: Duration(notify.DefaultToastDuration)},
		Server: ServerConfig{
			Addr:          ":8080",
			FrameInterval: Duration(20 * time.Millisecond),
			SSEBuffer:     16,
		},
		Shell: ShellConfig{MaxInput: shell.DefaultMaxInput},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return nil
	}
	// Default to YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Validate rejects settings that would stall playback.
func (c Config) Validate() error {
	var errs []error
	if c.Playback.Interval <= 0 {
		errs = append(errs, errors.New("playback.interval must be positive"))
	}
	if c.Playback.CharsPerTick < 1 {
		errs = append(errs, errors.New("playback.chars_per_tick must be at least 1"))
	}
	if c.Playback.StartDelay < 0 || c.Playback.SettleDelay < 0 || c.Playback.MaxDuration < 0 {
		errs = append(errs, errors.New("playback delays must not be negative"))
	}
	if c.Toast.Duration <= 0 {
		errs = append(errs, errors.New("toast.duration must be positive"))
	}
	if c.Server.FrameInterval <= 0 {
		errs = append(errs, errors.New("server.frame_interval must be positive"))
	}
	if c.Server.SSEBuffer < 1 {
		errs = append(errs, errors.New("server.sse_buffer must be at least 1"))
	}
	if c.Shell.MaxInput < 1 {
		errs = append(errs, errors.New("shell.max_input must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// StreamOptions converts the playback settings for stream.New.
func (c Config) StreamOptions() []stream.Option {
	p := c.Playback
	return []stream.Option{
		stream.WithInterval(p.Interval.Std()),
		stream.WithCharsPerTick(p.CharsPerTick),
		stream.WithStartDelay(p.StartDelay.Std()),
		stream.WithMaxDuration(p.MaxDuration.Std()),
	}
}

// PlaybackOptions converts the playback settings for playback.New.
func (c Config) PlaybackOptions() []playback.Option {
	return []playback.Option{
		playback.WithSettleDelay(c.Playback.SettleDelay.Std()),
		playback.WithStreamOptions(c.StreamOptions()...),
	}
}
