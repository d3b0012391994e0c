package ports

import (
	"context"

	"github.com/aretw0/terminaltour/pkg/domain"
)

// ScriptLoader defines how frontends retrieve scripts.
// This allows the content source (embedded YAML, Loam, Memory) to be decoupled.
type ScriptLoader interface {
	// GetScript retrieves a script by ID.
	// It returns an error wrapping domain.ErrScriptNotFound for unknown IDs.
	GetScript(id string) (domain.Script, error)

	// ListScripts returns all script IDs available, sorted.
	ListScripts() ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that receives the ID of each changed script.
	Watch(ctx context.Context) (<-chan string, error)
}
