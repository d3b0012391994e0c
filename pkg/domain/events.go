package domain

import "time"

// EventType defines the category of a playback event.
type EventType string

const (
	EventTurnStart    EventType = "turn_start"
	EventTurnComplete EventType = "turn_complete"
	EventComplete     EventType = "complete"
	EventChange       EventType = "change"
)

// PlaybackEvent describes something that happened inside a sequencer.
type PlaybackEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ScriptID  string    `json:"script_id"`
	Index     int       `json:"index"`
	State     Playback  `json:"state"`
}

// PlaybackHooks defines callbacks for sequencer observability.
// Hooks run on the sequencer's goroutine and never after it is disposed.
type PlaybackHooks struct {
	OnTurnStart    func(*PlaybackEvent)
	OnTurnComplete func(*PlaybackEvent)
	OnComplete     func(*PlaybackEvent)
	OnChange       func(*PlaybackEvent)
}

// Merge returns hooks that call h first and then other.
func (h PlaybackHooks) Merge(other PlaybackHooks) PlaybackHooks {
	return PlaybackHooks{
		OnTurnStart:    chain(h.OnTurnStart, other.OnTurnStart),
		OnTurnComplete: chain(h.OnTurnComplete, other.OnTurnComplete),
		OnComplete:     chain(h.OnComplete, other.OnComplete),
		OnChange:       chain(h.OnChange, other.OnChange),
	}
}

func chain(a, b func(*PlaybackEvent)) func(*PlaybackEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *PlaybackEvent) {
		a(e)
		b(e)
	}
}
