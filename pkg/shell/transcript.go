package shell

import "github.com/aretw0/terminaltour/pkg/domain"

// Transcript is what a terminal window shows: the typed lines, their output
// and the current hint. Frontends that keep state locally (TUI, REPL) use it.
type Transcript struct {
	interp *Interpreter
	lines  []Line
	hint   string
}

// NewTranscript opens a transcript over interp with the welcome banner.
func NewTranscript(interp *Interpreter) *Transcript {
	return &Transcript{
		interp: interp,
		lines:  Welcome(interp.state),
		hint:   InitialHint,
	}
}

// Submit runs raw and appends the sanitized "$ input" line plus the output.
// Blank input is ignored.
func (t *Transcript) Submit(raw string) Result {
	res := t.interp.Exec(raw)
	if res.Command == "" {
		return res
	}
	if res.Clear {
		t.lines = nil
	} else {
		t.lines = append(t.lines, Line{Role: domain.RoleInput, Text: "$ " + res.Input})
		t.lines = append(t.lines, res.Lines...)
	}
	if res.Hint != "" {
		t.hint = res.Hint
	}
	return res
}

// Lines returns everything printed so far.
func (t *Transcript) Lines() []Line {
	return t.lines
}

// Hint returns the current helper text.
func (t *Transcript) Hint() string {
	return t.hint
}

// State returns the interpreter state.
func (t *Transcript) State() State {
	return t.interp.State()
}
