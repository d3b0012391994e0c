package ports

import (
	"slices"
	"testing"

	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunScriptLoaderContract runs a suite of tests to verify that a ScriptLoader
// implementation adheres to the interface contract. want lists scripts the
// loader was seeded with; at least one must have turns.
func RunScriptLoaderContract(t *testing.T, loader ScriptLoader, want ...domain.Script) {
	t.Helper()
	require.NotEmpty(t, want, "contract needs seeded scripts")

	t.Run("GetScript", func(t *testing.T) {
		for _, w := range want {
			got, err := loader.GetScript(w.ID)
			require.NoError(t, err, "GetScript(%s)", w.ID)
			assert.Equal(t, w.ID, got.ID)
			assert.Equal(t, w.Title, got.Title)
			assert.Equal(t, w.Kind, got.Kind)
			require.Len(t, got.Turns, len(w.Turns))
			for i := range w.Turns {
				assert.Equal(t, w.Turns[i].Role, got.Turns[i].Role)
				assert.Equal(t, w.Turns[i].Text, got.Turns[i].Text)
				assert.Len(t, got.Turns[i].Blocks, len(w.Turns[i].Blocks))
			}
		}
	})

	t.Run("GetScript_NotFound", func(t *testing.T) {
		_, err := loader.GetScript("non-existent-script")
		assert.ErrorIs(t, err, domain.ErrScriptNotFound)
	})

	t.Run("ListScripts", func(t *testing.T) {
		ids, err := loader.ListScripts()
		require.NoError(t, err)
		assert.True(t, slices.IsSorted(ids), "ids are sorted")
		for _, w := range want {
			assert.Contains(t, ids, w.ID)
		}
	})
}
