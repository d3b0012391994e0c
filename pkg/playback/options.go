package playback

import (
	"log/slog"
	"time"

	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/stream"
)

// DefaultSettleDelay is the pause between a finished turn and the next one.
const DefaultSettleDelay = 600 * time.Millisecond

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithSettleDelay sets the pause after each turn finishes streaming.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Sequencer) {
		if d >= 0 {
			s.settle = d
		}
	}
}

// WithHooks registers lifecycle callbacks. Multiple calls are merged.
func WithHooks(h domain.PlaybackHooks) Option {
	return func(s *Sequencer) {
		s.hooks = s.hooks.Merge(h)
	}
}

// WithStreamOptions configures the underlying streamer.
func WithStreamOptions(opts ...stream.Option) Option {
	return func(s *Sequencer) {
		s.streamOpts = append(s.streamOpts, opts...)
	}
}

// WithLogger sets the logger used for debug tracing of transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sequencer) {
		if l != nil {
			s.logger = l
		}
	}
}
