package tour

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/ports"
)

// layered resolves scripts from primary first and falls back to the embedded set.
type layered struct {
	primary  ports.ScriptLoader
	fallback ports.ScriptLoader
}

func (l *layered) GetScript(id string) (domain.Script, error) {
	s, err := l.primary.GetScript(id)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domain.ErrScriptNotFound) {
		return domain.Script{}, err
	}
	return l.fallback.GetScript(id)
}

func (l *layered) ListScripts() ([]string, error) {
	a, err := l.primary.ListScripts()
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	b, err := l.fallback.ListScripts()
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	ids := append(a, b...)
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func (l *layered) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := l.primary.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}
