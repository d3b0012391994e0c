/*
Package stream reveals text incrementally, a few runes per tick, on an injected clock.

A Streamer is the leaf of every animated widget: the playback sequencer hands it
the text of the current turn and waits for the completion callback before moving on.
*/
package stream

import (
	"time"

	"github.com/aretw0/terminaltour/pkg/clock"
)

// Streamer reveals one text at a time.
//
// It is not safe for concurrent use. All methods and callbacks are expected to
// run on the goroutine that advances the clock.
type Streamer struct {
	clock clock.Clock

	interval    time.Duration
	perTick     int
	startDelay  time.Duration
	maxDuration time.Duration

	runes  []rune
	offset int
	step   int

	// gen identifies the current run; ticks scheduled by an older run are ignored.
	gen      uint64
	timer    clock.Timer
	done     bool
	disposed bool

	onReveal   func(int)
	onComplete func()
}

// New creates a Streamer driven by c.
func New(c clock.Clock, opts ...Option) *Streamer {
	s := &Streamer{
		clock:       c,
		interval:    DefaultInterval,
		perTick:     DefaultCharsPerTick,
		maxDuration: DefaultMaxDuration,
		done:        true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins streaming text from the first rune, discarding any previous run.
// onReveal receives the new offset (in runes) after every tick; onComplete runs
// exactly once when the whole text is visible. Empty text completes before
// Start returns.
func (s *Streamer) Start(text string, onReveal func(int), onComplete func()) {
	if s.disposed {
		return
	}
	s.Seek(text, 0, onReveal, onComplete)
	if s.done {
		return
	}
	s.schedule(s.startDelay + s.interval)
}

// Seek loads text with the first offset runes already revealed, without
// scheduling anything. Call Resume to continue from there.
func (s *Streamer) Seek(text string, offset int, onReveal func(int), onComplete func()) {
	if s.disposed {
		return
	}
	s.cancel()
	s.runes = []rune(text)
	s.offset = min(max(offset, 0), len(s.runes))
	s.step = s.stepFor(len(s.runes))
	s.onReveal = onReveal
	s.onComplete = onComplete
	s.done = false

	if len(s.runes) == 0 {
		s.complete()
	}
}

// Resume continues revealing from the current offset. It is a no-op while a
// tick is already pending or after completion. If the text is already fully
// revealed, completion fires before Resume returns.
func (s *Streamer) Resume() {
	if s.disposed || s.done || s.timer != nil {
		return
	}
	if s.offset >= len(s.runes) {
		s.complete()
		return
	}
	s.schedule(s.interval)
}

// Stop cancels pending ticks. The revealed offset is kept so Resume continues
// without skipping or repeating runes.
func (s *Streamer) Stop() {
	s.cancel()
}

// Dispose cancels everything. No callback fires afterwards.
func (s *Streamer) Dispose() {
	s.cancel()
	s.disposed = true
	s.onReveal = nil
	s.onComplete = nil
}

// Offset returns the number of runes revealed.
func (s *Streamer) Offset() int {
	return s.offset
}

// Visible returns the revealed prefix of the text.
func (s *Streamer) Visible() string {
	return string(s.runes[:s.offset])
}

// Running reports whether a tick is pending.
func (s *Streamer) Running() bool {
	return s.timer != nil
}

// Done reports whether the current text finished streaming.
func (s *Streamer) Done() bool {
	return s.done
}

// Duration predicts how long text takes to stream from Start to completion.
func (s *Streamer) Duration(text string) time.Duration {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	step := s.stepFor(n)
	ticks := (n + step - 1) / step
	return s.startDelay + time.Duration(ticks)*s.interval
}

// stepFor returns the runes revealed per tick for a text of n runes.
func (s *Streamer) stepFor(n int) int {
	step := s.perTick
	if s.maxDuration <= 0 {
		return step
	}
	maxTicks := int(s.maxDuration / s.interval)
	if maxTicks < 1 {
		return max(step, n)
	}
	return max(step, (n+maxTicks-1)/maxTicks)
}

func (s *Streamer) schedule(d time.Duration) {
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() { s.tick(gen) })
}

func (s *Streamer) tick(gen uint64) {
	if s.disposed || gen != s.gen {
		return
	}
	s.timer = nil

	s.offset = min(s.offset+s.step, len(s.runes))
	if s.onReveal != nil {
		s.onReveal(s.offset)
	}
	// the reveal callback may have stopped or restarted us
	if s.disposed || gen != s.gen {
		return
	}

	if s.offset >= len(s.runes) {
		s.complete()
		return
	}
	s.schedule(s.interval)
}

func (s *Streamer) cancel() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Streamer) complete() {
	if s.done {
		return
	}
	s.done = true
	if s.onComplete != nil {
		s.onComplete()
	}
}
