package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/terminaltour/pkg/domain"
)

// Loader implements ports.ScriptLoader using an in-memory map.
type Loader struct {
	mu      sync.RWMutex
	scripts map[string]domain.Script
}

// NewLoader creates a Loader holding the given scripts.
func NewLoader(scripts ...domain.Script) (*Loader, error) {
	l := &Loader{scripts: make(map[string]domain.Script, len(scripts))}
	for _, s := range scripts {
		if err := l.Put(s); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Put adds or replaces a script.
func (l *Loader) Put(s domain.Script) error {
	if s.ID == "" {
		return fmt.Errorf("script missing ID")
	}
	for i, t := range s.Turns {
		if !t.Role.Valid() {
			return fmt.Errorf("script %s turn %d: unknown role %q", s.ID, i, t.Role)
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scripts[s.ID] = s
	return nil
}

// GetScript retrieves a script by ID.
func (l *Loader) GetScript(id string) (domain.Script, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.scripts[id]
	if !ok {
		return domain.Script{}, fmt.Errorf("%w: %s", domain.ErrScriptNotFound, id)
	}
	return s, nil
}

// ListScripts returns all available script IDs.
func (l *Loader) ListScripts() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.scripts))
	for k := range l.scripts {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
