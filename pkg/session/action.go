package session

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned for an action name that no widget control maps to.
var ErrUnknownAction = errors.New("unknown action")

// ErrScriptNotAllowed is returned when selecting a script that is not one of the widget's variants.
var ErrScriptNotAllowed = errors.New("script is not a variant of this widget")

// Action is a widget control.
type Action string

const (
	ActionPlay    Action = "play"
	ActionPause   Action = "pause"
	ActionToggle  Action = "toggle"
	ActionReset   Action = "reset"
	ActionForward Action = "forward"
	ActionBack    Action = "back"
	ActionSelect  Action = "select"
)

// ParseAction validates an action name from a request path.
func ParseAction(name string) (Action, error) {
	switch a := Action(name); a {
	case ActionPlay, ActionPause, ActionToggle, ActionReset, ActionForward, ActionBack, ActionSelect:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
