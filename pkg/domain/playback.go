package domain

// Phase is the named state of a playback sequencer.
type Phase string

const (
	PhaseIdle      Phase = "idle"      // index 0, nothing revealed
	PhaseStreaming Phase = "streaming" // revealing Turns[Index]
	PhasePaused    Phase = "paused"    // advancement suspended, partial reveal kept
	PhaseComplete  Phase = "complete"  // Index == Total
)

// Playback is the state of one sequencer instance.
// It is owned exclusively by that sequencer and never shared across widgets.
type Playback struct {
	ScriptID string `json:"script_id"`
	Phase    Phase  `json:"phase"`

	// Index is the turn currently streaming (or paused on). Equals Total when complete.
	Index int `json:"index"`
	Total int `json:"total"`

	// Offset is the number of runes of Turns[Index] revealed so far.
	Offset int `json:"offset"`

	// Pass is the 1-based pass of a looping script; Passes is the script's total.
	Pass   int `json:"pass"`
	Passes int `json:"passes"`

	// Settling is true while the inter-turn delay runs after a turn finished.
	Settling bool `json:"settling,omitempty"`
}

// NewPlayback returns the idle state for a script.
func NewPlayback(s Script) Playback {
	return Playback{
		ScriptID: s.ID,
		Phase:    PhaseIdle,
		Total:    len(s.Turns),
		Pass:     1,
		Passes:   s.Passes(),
	}
}

// Playing reports whether the sequencer is advancing on its own.
func (p Playback) Playing() bool {
	return p.Phase == PhaseStreaming
}

// Done reports whether the script has been played to the end.
func (p Playback) Done() bool {
	return p.Phase == PhaseComplete
}

// RevealedTurn is a turn as it should be displayed right now.
type RevealedTurn struct {
	Turn

	// Visible is the revealed prefix of Turn.Text.
	Visible string `json:"visible"`

	// Complete is true when the whole text is shown (blocks are shown too).
	Complete bool `json:"complete"`

	// Streaming is true for the single turn whose text is still being revealed.
	Streaming bool `json:"streaming,omitempty"`
}

// Frame is the render-ready projection of a Playback over its Script.
type Frame struct {
	State Playback       `json:"state"`
	Title string         `json:"title,omitempty"`
	Kind  ScriptKind     `json:"kind,omitempty"`
	Turns []RevealedTurn `json:"turns"`
}

// BuildFrame projects state over script. Turns before the current index are
// always fully revealed; the current turn shows its streamed prefix.
func BuildFrame(s Script, p Playback) Frame {
	f := Frame{
		State: p,
		Title: s.Title,
		Kind:  s.Kind,
		Turns: []RevealedTurn{},
	}
	if p.Phase == PhaseIdle || len(s.Turns) == 0 {
		return f
	}

	last := p.Index
	if last >= len(s.Turns) {
		last = len(s.Turns) - 1
	}
	for i := 0; i <= last; i++ {
		t := s.Turns[i]
		rt := RevealedTurn{Turn: t, Visible: t.Text, Complete: true}
		if i == p.Index {
			rt.Visible = prefix(t.Text, p.Offset)
			rt.Complete = p.Offset >= t.Len()
			rt.Streaming = p.Phase == PhaseStreaming && !rt.Complete
		}
		f.Turns = append(f.Turns, rt)
	}
	return f
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
