package playback

import "github.com/aretw0/terminaltour/pkg/domain"

// EventType identifies an input to the playback state machine.
type EventType int

const (
	EventPlay EventType = iota
	EventPause
	EventToggle
	EventReset
	EventStepForward
	EventStepBack
	EventReveal     // the streamer revealed up to Event.Offset
	EventStreamDone // the streamer finished the current turn
	EventAdvance    // the settle delay elapsed
	EventSelect     // switch to Event.Script
)

var eventNames = map[EventType]string{
	EventPlay:        "play",
	EventPause:       "pause",
	EventToggle:      "toggle",
	EventReset:       "reset",
	EventStepForward: "forward",
	EventStepBack:    "back",
	EventReveal:      "reveal",
	EventStreamDone:  "stream_done",
	EventAdvance:     "advance",
	EventSelect:      "select",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is an input to Transition.
type Event struct {
	Type   EventType
	Offset int
	Script domain.Script
}

// Effect is a set of side effects the caller must perform after a transition.
type Effect uint8

const (
	StartStream     Effect = 1 << iota // stream the current turn from offset 0
	ResumeStream                       // stream the current turn from the current offset
	StopStream                         // cancel pending stream ticks
	ScheduleAdvance                    // arm the settle timer
	CancelAdvance                      // disarm the settle timer
)

// None is the empty effect set.
const None Effect = 0

// Has reports whether e contains f.
func (e Effect) Has(f Effect) bool {
	return e&f != 0
}

// Transition computes the next playback state for script s.
// It is pure: timers and streaming are requested through the returned Effect.
// Events that make no sense in the current phase are ignored.
func Transition(s domain.Script, p domain.Playback, e Event) (domain.Playback, Effect) {
	switch e.Type {
	case EventToggle:
		if p.Phase == domain.PhaseStreaming {
			return Transition(s, p, Event{Type: EventPause})
		}
		return Transition(s, p, Event{Type: EventPlay})

	case EventPlay:
		return play(s, p)

	case EventPause:
		if p.Phase != domain.PhaseStreaming {
			return p, None
		}
		p.Phase = domain.PhasePaused
		return p, StopStream | CancelAdvance

	case EventReset:
		return rewind(p, domain.PhaseIdle), StopStream | CancelAdvance

	case EventStepForward:
		if p.Phase == domain.PhaseIdle {
			// nothing is shown yet, so the first step reveals turn 0
			return step(s, p, 0)
		}
		return step(s, p, p.Index+1)

	case EventStepBack:
		if p.Phase == domain.PhaseIdle {
			return p, None
		}
		return step(s, p, p.Index-1)

	case EventReveal:
		if p.Phase != domain.PhaseStreaming || p.Index >= len(s.Turns) {
			return p, None
		}
		// offsets only grow within a turn
		n := min(e.Offset, s.Turns[p.Index].Len())
		if n > p.Offset {
			p.Offset = n
		}
		return p, None

	case EventStreamDone:
		if p.Phase != domain.PhaseStreaming || p.Settling || p.Index >= len(s.Turns) {
			return p, None
		}
		p.Offset = s.Turns[p.Index].Len()
		p.Settling = true
		return p, ScheduleAdvance

	case EventAdvance:
		if p.Phase != domain.PhaseStreaming || !p.Settling {
			return p, None
		}
		p.Settling = false
		p.Offset = 0
		switch {
		case p.Index+1 < p.Total:
			p.Index++
			return p, StartStream
		case p.Pass < p.Passes:
			p.Pass++
			p.Index = 0
			return p, StartStream
		default:
			p.Index = p.Total
			p.Phase = domain.PhaseComplete
			return p, None
		}

	case EventSelect:
		return domain.NewPlayback(e.Script), StopStream | CancelAdvance
	}
	return p, None
}

func play(s domain.Script, p domain.Playback) (domain.Playback, Effect) {
	if p.Total == 0 {
		p.Phase = domain.PhaseComplete
		p.Index, p.Offset = 0, 0
		return p, None
	}

	switch p.Phase {
	case domain.PhaseStreaming:
		return p, None
	case domain.PhaseComplete:
		p = rewind(p, domain.PhaseStreaming)
		return p, StartStream
	case domain.PhasePaused:
		p.Phase = domain.PhaseStreaming
		if p.Settling {
			return p, ScheduleAdvance
		}
		return p, ResumeStream
	default:
		p.Phase = domain.PhaseStreaming
		p.Offset = 0
		return p, StartStream
	}
}

func step(s domain.Script, p domain.Playback, target int) (domain.Playback, Effect) {
	if p.Total == 0 {
		return p, None
	}
	target = min(max(target, 0), p.Total-1)
	p.Index = target
	p.Offset = s.Turns[target].Len()
	p.Phase = domain.PhasePaused
	p.Settling = false
	return p, StopStream | CancelAdvance
}

func rewind(p domain.Playback, phase domain.Phase) domain.Playback {
	p.Phase = phase
	p.Index = 0
	p.Offset = 0
	p.Pass = 1
	p.Settling = false
	return p
}
