package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/typed"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts the Loam library to the ports.ScriptLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[ScriptMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ScriptMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	// Strict mode keeps numbers unambiguous; the tour never writes scripts.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ScriptMetadata](repo)), nil
}

// GetScript retrieves a script document and decodes its frontmatter.
func (l *Loader) GetScript(id string) (domain.Script, error) {
	ctx := context.Background()

	doc, err := l.Repo.Get(ctx, id)
	if err == nil {
		return buildScript(doc.ID, doc.Data, doc.Content)
	}

	// The file name may differ from the id declared in frontmatter.
	docs, listErr := l.documents(ctx)
	if listErr != nil {
		return domain.Script{}, fmt.Errorf("loam get failed for %s: %w", id, listErr)
	}
	for _, d := range docs {
		if scriptID(d.ID, d.Data) == id {
			return buildScript(d.ID, d.Data, d.Content)
		}
	}
	return domain.Script{}, fmt.Errorf("%w: %s", domain.ErrScriptNotFound, id)
}

// ListScripts lists all scripts in the repository.
func (l *Loader) ListScripts() ([]string, error) {
	docs, err := l.documents(context.Background())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := scriptID(doc.ID, doc.Data)
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// documents lists every script with its frontmatter read from the file.
// List answers from Loam's index, whose metadata lags behind documents saved
// without it, so each entry is re-read.
func (l *Loader) documents(ctx context.Context) ([]*typed.DocumentModel[ScriptMetadata], error) {
	listed, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	docs := make([]*typed.DocumentModel[ScriptMetadata], 0, len(listed))
	for _, d := range listed {
		full, err := l.Repo.Get(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", d.ID, err)
		}
		docs = append(docs, full)
	}
	return docs, nil
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func scriptID(docID string, meta ScriptMetadata) string {
	if meta.ID != "" {
		return trimExtension(meta.ID)
	}
	return trimExtension(docID)
}

func buildScript(docID string, meta ScriptMetadata, content string) (domain.Script, error) {
	s := domain.Script{
		ID:          scriptID(docID, meta),
		Title:       meta.Title,
		Kind:        domain.ScriptKind(meta.Kind),
		Request:     meta.Request,
		Description: strings.TrimSpace(content),
	}
	if s.Kind == "" {
		s.Kind = domain.KindChat
	}

	repeat, err := toInt(meta.Repeat)
	if err != nil {
		return domain.Script{}, fmt.Errorf("script %s: repeat: %w", s.ID, err)
	}
	s.Repeat = repeat

	turns, err := decodeTurns(meta.Turns)
	if err != nil {
		return domain.Script{}, fmt.Errorf("script %s: %w", s.ID, err)
	}
	s.Turns = turns
	return s, nil
}

func decodeTurns(raw []any) ([]domain.Turn, error) {
	turns := make([]domain.Turn, 0, len(raw))
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &turns,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode turns: %w", err)
	}
	for i, t := range turns {
		if !t.Role.Valid() {
			return nil, fmt.Errorf("turn %d: unknown role %q", i, t.Role)
		}
	}
	return turns, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
