package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bugfixDoc = `---
id: bugfix
title: Fix a bug
kind: chat
turns:
  - role: user
    text: Fix the login bug
  - role: assistant
    text: Found it.
    blocks:
      - kind: files
        lines: ["Edited auth.go"]
---
The agent reads the code before touching it.`

const loopDoc = `---
title: Test loop
kind: loop
repeat: 2
turns:
  - role: action
    label: Write
    text: Writing the test
---
`

// newRepo creates a writable Loam repository in a temp dir.
func newRepo(t *testing.T) core.Repository {
	t.Helper()
	repo, err := loam.Init(t.TempDir(), loam.WithVersioning(false))
	require.NoError(t, err, "Failed to init loam repo")
	return repo
}

func seed(t *testing.T, repo core.Repository, docs map[string]string) {
	t.Helper()
	ctx := context.Background()
	for id, content := range docs {
		require.NoError(t, repo.Save(ctx, core.Document{ID: id, Content: content}))
	}
}

func TestLoader_Contract(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, map[string]string{
		"bugfix.md": bugfixDoc,
		"loop.md":   loopDoc,
	})
	loader := New(loam.NewTypedRepository[ScriptMetadata](repo))

	ports.RunScriptLoaderContract(t, loader,
		domain.Script{
			ID:    "bugfix",
			Title: "Fix a bug",
			Kind:  domain.KindChat,
			Turns: []domain.Turn{
				{Role: domain.RoleUser, Text: "Fix the login bug"},
				{Role: domain.RoleAssistant, Text: "Found it.", Blocks: []domain.Block{{Kind: domain.BlockFiles}}},
			},
		},
		domain.Script{
			ID:    "loop",
			Title: "Test loop",
			Kind:  domain.KindLoop,
			Turns: []domain.Turn{{Role: domain.RoleAction, Text: "Writing the test"}},
		},
	)
}

func TestLoader_DecodesBodyBlocksAndRepeat(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, map[string]string{
		"bugfix.md": bugfixDoc,
		"loop.md":   loopDoc,
	})
	loader := New(loam.NewTypedRepository[ScriptMetadata](repo))

	s, err := loader.GetScript("bugfix")
	require.NoError(t, err)
	assert.Equal(t, "The agent reads the code before touching it.", s.Description)
	require.Len(t, s.Turns[1].Blocks, 1)
	assert.Equal(t, []string{"Edited auth.go"}, s.Turns[1].Blocks[0].Lines)

	loop, err := loader.GetScript("loop")
	require.NoError(t, err)
	assert.Equal(t, 2, loop.Passes())
	assert.Equal(t, "Write", loop.Turns[0].Label)
}

func TestLoader_FrontmatterIDOverridesFileName(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, map[string]string{
		"scenes/first.md": "---\nid: opening\ntitle: Opening\nturns: []\n---\n",
	})
	loader := New(loam.NewTypedRepository[ScriptMetadata](repo))

	ids, err := loader.ListScripts()
	require.NoError(t, err)
	assert.Equal(t, []string{"opening"}, ids)

	s, err := loader.GetScript("opening")
	require.NoError(t, err)
	assert.Equal(t, "Opening", s.Title)
	assert.True(t, s.Empty())
}

func TestOpen_FrontmatterIDOnDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scenes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenes", "first.md"), []byte(bugfixDoc), 0644))

	loader, err := Open(dir)
	require.NoError(t, err)

	ids, err := loader.ListScripts()
	require.NoError(t, err)
	assert.Equal(t, []string{"bugfix"}, ids)

	s, err := loader.GetScript("bugfix")
	require.NoError(t, err)
	assert.Equal(t, "Fix a bug", s.Title)
	assert.Equal(t, "The agent reads the code before touching it.", s.Description)
	assert.Len(t, s.Turns, 2)

	_, err = loader.GetScript("scenes/first")
	require.NoError(t, err, "the file path still resolves")
}

func TestLoader_RejectsUnknownRole(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, map[string]string{
		"bad.md": "---\nid: bad\nturns:\n  - role: robot\n    text: beep\n---\n",
	})
	loader := New(loam.NewTypedRepository[ScriptMetadata](repo))

	_, err := loader.GetScript("bad")
	assert.ErrorContains(t, err, "unknown role")
}

func TestLoader_ListCollision(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, map[string]string{
		"a.md": "---\nid: same\n---\n",
		"b.md": "---\nid: same\n---\n",
	})
	loader := New(loam.NewTypedRepository[ScriptMetadata](repo))

	_, err := loader.ListScripts()
	assert.ErrorContains(t, err, "collision detected")
}

func TestToInt(t *testing.T) {
	for _, v := range []any{2, int64(2), uint64(2), 2.0, "2"} {
		n, err := toInt(v)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	}
	n, err := toInt(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = toInt([]string{"x"})
	assert.Error(t, err)
}
