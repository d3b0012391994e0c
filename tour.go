package tour

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/terminaltour/internal/content"
	"github.com/aretw0/terminaltour/internal/logging"
	"github.com/aretw0/terminaltour/pkg/adapters/loam"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/page"
	"github.com/aretw0/terminaltour/pkg/ports"
)

// Tour is the loaded page and the scripts its widgets play.
type Tour struct {
	Page    domain.Page
	Scripts ports.ScriptLoader
	Name    string

	dir    string
	loader ports.ScriptLoader
	logger *slog.Logger
}

// Option configures a Tour.
type Option func(*Tour)

// WithScriptsDir layers a Loam repository of script files over the embedded scripts.
func WithScriptsDir(dir string) Option {
	return func(t *Tour) {
		t.dir = dir
	}
}

// WithLoader injects a script loader, layered over the embedded scripts.
func WithLoader(l ports.ScriptLoader) Option {
	return func(t *Tour) {
		t.loader = l
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tour) {
		t.logger = logger
	}
}

// New loads the embedded tour and validates it against the configured scripts.
func New(opts ...Option) (*Tour, error) {
	t := &Tour{logger: logging.NewNop(), Name: "embedded"}
	for _, opt := range opts {
		opt(t)
	}

	pg, builtin, err := content.Load()
	if err != nil {
		return nil, err
	}
	t.Page = pg
	t.Scripts = builtin

	if t.loader == nil && t.dir != "" {
		abs, err := filepath.Abs(t.dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		l, err := loam.Open(abs)
		if err != nil {
			return nil, err
		}
		t.loader = l
		t.Name = filepath.Base(abs)
	}
	if t.loader != nil {
		t.Scripts = &layered{primary: t.loader, fallback: builtin}
	}
	t.logger = t.logger.With("tour", t.Name)

	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.logger.Debug("tour loaded", "sections", len(pg.Sections))
	return t, nil
}

// Validate checks the page against the current scripts.
func (t *Tour) Validate() error {
	return page.Validate(t.Page, t.Scripts)
}

// Watch reports script IDs whose files changed.
// It fails if the scripts come from a loader that cannot be watched.
func (t *Tour) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := t.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Logger returns the tour logger.
func (t *Tour) Logger() *slog.Logger {
	return t.logger
}
