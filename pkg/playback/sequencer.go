package playback

import (
	"log/slog"
	"time"

	"github.com/aretw0/terminaltour/internal/logging"
	"github.com/aretw0/terminaltour/pkg/clock"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/stream"
)

// Sequencer plays one script at a time. It owns its state exclusively.
// It is not safe for concurrent use.
type Sequencer struct {
	clock      clock.Clock
	streamer   *stream.Streamer
	streamOpts []stream.Option
	settle     time.Duration
	hooks      domain.PlaybackHooks
	logger     *slog.Logger

	script  domain.Script
	state   domain.Playback
	advance clock.Timer

	queue       []Event
	dispatching bool
	disposed    bool
}

// New creates a Sequencer for script, idle at turn 0.
func New(c clock.Clock, script domain.Script, opts ...Option) *Sequencer {
	s := &Sequencer{
		clock:  c,
		settle: DefaultSettleDelay,
		logger: logging.NewNop(),
		script: script,
		state:  domain.NewPlayback(script),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streamer = stream.New(c, s.streamOpts...)
	return s
}

// Play starts or resumes playback. From complete it replays from turn 0.
func (s *Sequencer) Play() { s.dispatch(Event{Type: EventPlay}) }

// Pause suspends playback, keeping the partial reveal.
func (s *Sequencer) Pause() { s.dispatch(Event{Type: EventPause}) }

// Toggle pauses while streaming and plays otherwise.
func (s *Sequencer) Toggle() { s.dispatch(Event{Type: EventToggle}) }

// Reset returns to idle at turn 0 with nothing revealed.
func (s *Sequencer) Reset() { s.dispatch(Event{Type: EventReset}) }

// StepForward reveals the next turn fully and pauses.
func (s *Sequencer) StepForward() { s.dispatch(Event{Type: EventStepForward}) }

// StepBack reveals the previous turn fully and pauses.
func (s *Sequencer) StepBack() { s.dispatch(Event{Type: EventStepBack}) }

// Select switches to another script, discarding all playback state.
func (s *Sequencer) Select(script domain.Script) {
	s.dispatch(Event{Type: EventSelect, Script: script})
}

// State returns a copy of the current playback state.
func (s *Sequencer) State() domain.Playback {
	return s.state
}

// Script returns the script being played.
func (s *Sequencer) Script() domain.Script {
	return s.script
}

// Frame returns the render projection of the current state.
func (s *Sequencer) Frame() domain.Frame {
	return domain.BuildFrame(s.script, s.state)
}

// Disposed reports whether Dispose was called.
func (s *Sequencer) Disposed() bool {
	return s.disposed
}

// Dispose cancels all timers. No hook fires afterwards and further calls are ignored.
func (s *Sequencer) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.queue = nil
	s.cancelAdvance()
	s.streamer.Dispose()
}

func (s *Sequencer) dispatch(e Event) {
	if s.disposed {
		return
	}
	s.queue = append(s.queue, e)
	if s.dispatching {
		return
	}

	s.dispatching = true
	defer func() { s.dispatching = false }()

	for len(s.queue) > 0 && !s.disposed {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.apply(next)
	}
}

func (s *Sequencer) apply(e Event) {
	prev := s.state
	next, eff := Transition(s.script, prev, e)
	if e.Type == EventSelect {
		s.script = e.Script
	}
	s.state = next

	if e.Type != EventReveal {
		s.logger.Debug("playback transition",
			"script", next.ScriptID,
			"event", e.Type.String(),
			"from", prev.Phase,
			"to", next.Phase,
			"index", next.Index)
	}

	if eff.Has(CancelAdvance) {
		s.cancelAdvance()
	}
	if eff.Has(StopStream) {
		s.streamer.Stop()
	}
	if eff.Has(ScheduleAdvance) {
		s.scheduleAdvance()
	}

	// Hooks fire before new streaming starts so observers see turn_complete
	// ahead of a synchronously completing empty turn.
	if e.Type == EventStreamDone && next.Settling && !prev.Settling {
		s.emit(s.hooks.OnTurnComplete, domain.EventTurnComplete)
	}
	if prev != next {
		s.emit(s.hooks.OnChange, domain.EventChange)
	}
	if next.Phase == domain.PhaseComplete && prev.Phase != domain.PhaseComplete {
		s.emit(s.hooks.OnComplete, domain.EventComplete)
	}

	switch {
	case eff.Has(StartStream):
		s.emit(s.hooks.OnTurnStart, domain.EventTurnStart)
		s.streamer.Start(s.currentText(), s.onReveal, s.onStreamDone)
	case eff.Has(ResumeStream):
		s.streamer.Seek(s.currentText(), next.Offset, s.onReveal, s.onStreamDone)
		s.streamer.Resume()
	}
}

func (s *Sequencer) currentText() string {
	if s.state.Index >= len(s.script.Turns) {
		return ""
	}
	return s.script.Turns[s.state.Index].Text
}

func (s *Sequencer) onReveal(n int) {
	s.dispatch(Event{Type: EventReveal, Offset: n})
}

func (s *Sequencer) onStreamDone() {
	s.dispatch(Event{Type: EventStreamDone})
}

func (s *Sequencer) scheduleAdvance() {
	s.cancelAdvance()
	s.advance = s.clock.AfterFunc(s.settle, func() {
		s.advance = nil
		s.dispatch(Event{Type: EventAdvance})
	})
}

func (s *Sequencer) cancelAdvance() {
	if s.advance != nil {
		s.advance.Stop()
		s.advance = nil
	}
}

func (s *Sequencer) emit(hook func(*domain.PlaybackEvent), t domain.EventType) {
	if hook == nil || s.disposed {
		return
	}
	hook(&domain.PlaybackEvent{
		Timestamp: s.clock.Now(),
		Type:      t,
		ScriptID:  s.state.ScriptID,
		Index:     s.state.Index,
		State:     s.state,
	})
}
