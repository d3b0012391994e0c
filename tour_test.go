package tour_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/terminaltour"
	"github.com/aretw0/terminaltour/pkg/adapters/memory"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Embedded(t *testing.T) {
	tr, err := tour.New()
	require.NoError(t, err)
	assert.Equal(t, "embedded", tr.Name)
	assert.Len(t, tr.Page.Sections, 11)

	hero, err := tr.Scripts.GetScript("hero")
	require.NoError(t, err)
	assert.NotEmpty(t, hero.Turns)

	_, err = tr.Watch(context.Background())
	assert.Error(t, err, "embedded scripts cannot be watched")
}

func TestNew_LoaderOverridesEmbedded(t *testing.T) {
	custom := domain.Script{
		ID:    "hero",
		Title: "custom hero",
		Turns: []domain.Turn{{Role: domain.RoleUser, Text: "hi"}},
	}
	l, err := memory.NewLoader(custom)
	require.NoError(t, err)

	tr, err := tour.New(tour.WithLoader(l))
	require.NoError(t, err)

	hero, err := tr.Scripts.GetScript("hero")
	require.NoError(t, err)
	assert.Equal(t, "custom hero", hero.Title)

	vague, err := tr.Scripts.GetScript("vague")
	require.NoError(t, err, "scripts missing from the loader come from the embedded tour")
	assert.Equal(t, "vague", vague.ID)

	ids, err := tr.Scripts.ListScripts()
	require.NoError(t, err)
	assert.IsIncreasing(t, ids)
	assert.Contains(t, ids, "hero")
}

func TestNew_LayeredContract(t *testing.T) {
	l, err := memory.NewLoader()
	require.NoError(t, err)
	tr, err := tour.New(tour.WithLoader(l))
	require.NoError(t, err)

	hero, err := tr.Scripts.GetScript("hero")
	require.NoError(t, err)
	ports.RunScriptLoaderContract(t, tr.Scripts, hero)
}

func TestNew_ScriptsDir(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nid: hero\ntitle: From disk\nturns:\n  - role: user\n    text: hi\n---\nEdited on disk.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero.md"), []byte(doc), 0o644))

	tr, err := tour.New(tour.WithScriptsDir(dir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), tr.Name)

	hero, err := tr.Scripts.GetScript("hero")
	require.NoError(t, err)
	assert.Equal(t, "From disk", hero.Title)
	assert.Equal(t, "Edited on disk.", hero.Description)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, tour.Version)
	assert.NotContains(t, tour.Version, "\n")
}
