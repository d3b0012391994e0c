/*
Package shell is a toy command interpreter for teaching terminal basics.

It matches literal input against a fixed command table (ls, pwd, cd, mkdir,
echo, help, clear) over a small fictional directory tree. Nothing touches the
real file system. Unknown input is answered with a "command not found" line,
never an error.
*/
package shell

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/aretw0/terminaltour/internal/logging"
	"github.com/aretw0/terminaltour/pkg/domain"
)

// InitialHint is shown before the first command.
const InitialHint = "Try typing 'ls' to see what's in this folder"

const unknownHint = "Command not found. Try 'help' to see available commands."

// Line is one row of shell output.
type Line struct {
	Role domain.Role `json:"role"`
	Text string      `json:"text"`
}

// Result is the outcome of one command.
type Result struct {
	// Command is the matched command name, or "unknown".
	Command string `json:"command"`

	// Input is the sanitized command line, safe to echo.
	Input string `json:"input,omitempty"`
	Lines []Line `json:"lines"`

	// Hint replaces the helper text under the terminal. Empty keeps the previous hint.
	Hint string `json:"hint,omitempty"`

	// Clear asks the view to drop everything printed so far.
	Clear bool `json:"clear,omitempty"`
}

func output(hint string, texts ...string) Result {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{Role: domain.RoleOutput, Text: t}
	}
	return Result{Lines: lines, Hint: hint}
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithState starts the interpreter from a previously saved state.
func WithState(st State) Option {
	return func(i *Interpreter) {
		i.state = st.Clone().normalize()
	}
}

// WithMaxInput sets the input size limit in bytes.
func WithMaxInput(n int) Option {
	return func(i *Interpreter) {
		i.maxInput = n
	}
}

// WithLogger sets the logger for rejected input.
func WithLogger(l *slog.Logger) Option {
	return func(i *Interpreter) {
		if l != nil {
			i.logger = l
		}
	}
}

// Interpreter runs commands against its own State.
type Interpreter struct {
	state    State
	maxInput int
	logger   *slog.Logger
}

// New creates an Interpreter in the home directory.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		state:    NewState(),
		maxInput: DefaultMaxInput,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// State returns a copy of the current state.
func (i *Interpreter) State() State {
	return i.state.Clone()
}

// Exec runs one line of input. Blank input produces no lines.
func (i *Interpreter) Exec(raw string) Result {
	clean, err := Sanitize(raw, i.maxInput)
	if err != nil {
		i.logger.Debug("shell input rejected", "err", err)
		return Result{Command: "rejected", Lines: []Line{{Role: domain.RoleOutput, Text: "shell: " + err.Error()}}}
	}

	cmd := strings.ToLower(strings.TrimSpace(clean))
	if cmd == "" {
		return Result{Command: "", Lines: []Line{}}
	}

	if run, ok := exact[cmd]; ok {
		res := run(&i.state, "")
		res.Command = cmd
		res.Input = clean
		return res
	}

	// arguments keep their original case
	line := strings.TrimLeftFunc(clean, unicode.IsSpace)
	for _, p := range prefixed {
		n := len(p.name) + 1
		if len(line) > n && strings.EqualFold(line[:n], p.name+" ") {
			res := p.run(&i.state, line[n:])
			res.Command = p.name
			res.Input = clean
			return res
		}
	}

	res := output(unknownHint, "command not found: "+clean)
	res.Command = "unknown"
	res.Input = clean
	return res
}

// Welcome returns the lines printed when a shell opens.
func Welcome(st State) []Line {
	return []Line{
		{Role: domain.RoleOutput, Text: "Welcome! Try the commands above."},
		{Role: domain.RoleOutput, Text: "The terminal is always 'in' a folder. Right now you're in " + st.Cwd},
	}
}
