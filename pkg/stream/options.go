package stream

import "time"

const (
	DefaultInterval     = 20 * time.Millisecond
	DefaultCharsPerTick = 2
	DefaultMaxDuration  = 3 * time.Second
)

// Option configures a Streamer.
type Option func(*Streamer)

// WithInterval sets the time between reveal ticks.
func WithInterval(d time.Duration) Option {
	return func(s *Streamer) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithCharsPerTick sets the minimum number of runes revealed per tick.
func WithCharsPerTick(n int) Option {
	return func(s *Streamer) {
		if n > 0 {
			s.perTick = n
		}
	}
}

// WithStartDelay delays the first tick after Start.
func WithStartDelay(d time.Duration) Option {
	return func(s *Streamer) {
		if d >= 0 {
			s.startDelay = d
		}
	}
}

// WithMaxDuration caps how long a single text takes to stream. Long texts
// reveal more runes per tick instead of streaming past the cap.
// Zero disables the cap.
func WithMaxDuration(d time.Duration) Option {
	return func(s *Streamer) {
		if d >= 0 {
			s.maxDuration = d
		}
	}
}
