package domain

// PlaybackDiff represents the changes between two playback states.
// It is serialized to JSON so stream clients can skip redundant frames.
type PlaybackDiff struct {
	ScriptID string `json:"script_id"`

	Phase  *Phase `json:"phase,omitempty"`
	Index  *int   `json:"index,omitempty"`
	Offset *int   `json:"offset,omitempty"`
	Pass   *int   `json:"pass,omitempty"`

	// Reset is set when the script changed or the offset went backwards,
	// meaning the client must drop what it has rendered.
	Reset bool `json:"reset,omitempty"`
}

// Diff calculates the difference between old and new.
// If old is nil, the diff describes the whole new state. It returns nil when
// nothing visible changed.
func Diff(old, new *Playback) *PlaybackDiff {
	if new == nil {
		return nil
	}

	d := &PlaybackDiff{ScriptID: new.ScriptID}
	if old == nil || old.ScriptID != new.ScriptID {
		d.Reset = old != nil
		d.Phase = &new.Phase
		d.Index = &new.Index
		d.Offset = &new.Offset
		d.Pass = &new.Pass
		return d
	}

	if old.Phase != new.Phase {
		d.Phase = &new.Phase
	}
	if old.Index != new.Index {
		d.Index = &new.Index
	}
	if old.Offset != new.Offset {
		d.Offset = &new.Offset
	}
	if old.Pass != new.Pass {
		d.Pass = &new.Pass
	}
	if new.Index < old.Index || (new.Index == old.Index && new.Offset < old.Offset) || new.Pass != old.Pass {
		d.Reset = true
	}

	if d.IsEmpty() {
		return nil
	}
	return d
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *PlaybackDiff) IsEmpty() bool {
	return d.Phase == nil &&
		d.Index == nil &&
		d.Offset == nil &&
		d.Pass == nil &&
		!d.Reset
}
