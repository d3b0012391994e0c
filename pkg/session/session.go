package session

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/terminaltour/pkg/clock"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/playback"
)

type command struct {
	action Action
	script domain.Script
	reply  chan error
}

// Session is one mounted widget.
type Session struct {
	ID       string
	Section  string
	Variants []string

	cmds   chan command
	frames chan domain.Frame
	done   chan struct{}
	cancel context.CancelFunc
	logger *slog.Logger
}

// Frames delivers a frame after every state change. It is closed when the
// session ends. Slow readers lose intermediate frames, never the latest one.
func (s *Session) Frames() <-chan domain.Frame {
	return s.frames
}

// Done is closed once the actor has disposed its Sequencer.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close unmounts the widget.
func (s *Session) Close() {
	s.cancel()
}

// Do runs a control on the widget and waits until it has been applied.
// script is only read for ActionSelect.
func (s *Session) Do(ctx context.Context, action Action, script domain.Script) error {
	if action == ActionSelect && len(s.Variants) > 0 && !slices.Contains(s.Variants, script.ID) {
		return ErrScriptNotAllowed
	}

	cmd := command{action: action, script: script, reply: make(chan error, 1)}
	select {
	case s.cmds <- cmd:
	case <-s.done:
		return domain.ErrDisposed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-s.done:
		return domain.ErrDisposed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the actor loop. It is the only goroutine touching seq and clk.
func (s *Session) run(ctx context.Context, seq *playback.Sequencer, clk *clock.Virtual, ticks <-chan time.Time, step time.Duration) {
	defer close(s.done)
	defer close(s.frames)
	defer seq.Dispose()

	var last *domain.Playback
	publish := func() {
		f := seq.Frame()
		if last != nil && domain.Diff(last, &f.State) == nil {
			return
		}
		st := f.State
		last = &st
		s.send(f)
	}

	publish()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("widget unmounted", "session", s.ID, "section", s.Section)
			return
		case cmd := <-s.cmds:
			cmd.reply <- apply(seq, cmd)
			publish()
		case <-ticks:
			clk.Advance(step)
			publish()
		}
	}
}

// send keeps the newest frame when the buffer is full.
func (s *Session) send(f domain.Frame) {
	for {
		select {
		case s.frames <- f:
			return
		default:
		}
		select {
		case <-s.frames:
		default:
		}
	}
}

func apply(seq *playback.Sequencer, cmd command) error {
	switch cmd.action {
	case ActionPlay:
		seq.Play()
	case ActionPause:
		seq.Pause()
	case ActionToggle:
		seq.Toggle()
	case ActionReset:
		seq.Reset()
	case ActionForward:
		seq.StepForward()
	case ActionBack:
		seq.StepBack()
	case ActionSelect:
		seq.Select(cmd.script)
	default:
		return ErrUnknownAction
	}
	return nil
}
