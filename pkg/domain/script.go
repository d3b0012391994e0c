package domain

import "unicode/utf8"

// Role tags who (or what) produced a turn. Presentation is keyed on it.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleAction    Role = "action" // a step the agent performs ("Scanning files...")
	RoleSystem    Role = "system" // status lines such as "Crafting response..."
	RoleInput     Role = "input"  // a typed shell line
	RoleOutput    Role = "output" // shell output
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleAction, RoleSystem, RoleInput, RoleOutput:
		return true
	}
	return false
}

// BlockKind selects the template used to render a rich block.
type BlockKind string

const (
	BlockList  BlockKind = "list"  // bulleted items
	BlockFiles BlockKind = "files" // "Created x" action lines
	BlockCode  BlockKind = "code"  // preformatted text
	BlockNote  BlockKind = "note"  // muted footnote
	BlockSteps BlockKind = "steps" // numbered plan
)

// Block is rich content attached to a turn. It is revealed at once when the
// turn's text finishes streaming.
type Block struct {
	Kind  BlockKind `json:"kind" yaml:"kind" mapstructure:"kind"`
	Title string    `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Lines []string  `json:"lines" yaml:"lines" mapstructure:"lines"`
}

// Turn is one scripted message or workflow step.
type Turn struct {
	Role Role   `json:"role" yaml:"role" mapstructure:"role"`
	Text string `json:"text" yaml:"text" mapstructure:"text"`

	// Label overrides the default speaker label (e.g. a step name like "Launch").
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`

	Blocks []Block `json:"blocks,omitempty" yaml:"blocks,omitempty" mapstructure:"blocks"`
}

// Len is the length of the streamed text in runes.
func (t Turn) Len() int {
	return utf8.RuneCountInString(t.Text)
}

// ScriptKind hints which presentational shell renders the script.
type ScriptKind string

const (
	KindChat     ScriptKind = "chat"
	KindWorkflow ScriptKind = "workflow"
	KindTerminal ScriptKind = "terminal"
	KindSteps    ScriptKind = "steps"
	KindLoop     ScriptKind = "loop"
)

// Script is an ordered sequence of turns representing one demo scenario.
type Script struct {
	ID    string     `json:"id" yaml:"id"`
	Title string     `json:"title" yaml:"title"`
	Kind  ScriptKind `json:"kind" yaml:"kind"`

	// Request is the user prompt shown above workflow scripts.
	Request string `json:"request,omitempty" yaml:"request,omitempty"`

	// Description is free prose shown next to the widget (markdown).
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Repeat is the number of passes a loop script plays. Zero means one.
	Repeat int `json:"repeat,omitempty" yaml:"repeat,omitempty"`

	Turns []Turn `json:"turns" yaml:"turns"`
}

// Passes returns the effective number of passes (at least one).
func (s Script) Passes() int {
	if s.Repeat < 1 {
		return 1
	}
	return s.Repeat
}

// Empty reports whether the script has nothing to play.
func (s Script) Empty() bool {
	return len(s.Turns) == 0
}
