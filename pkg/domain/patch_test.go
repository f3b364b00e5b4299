package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPatch(t *testing.T) {
	doc := &Document{ID: "doc-1", Name: "Before", Options: DocumentOptions{IsUntrusted: true}}
	base := NewTree().WithActiveDocument(doc).WithWidth(800)

	t.Run("Screen and Auth", func(t *testing.T) {
		next, err := ApplyPatch(base, map[string]any{
			"screen": map[string]any{"width": float64(320)},
			"github": map[string]any{"token": "secret"},
		})
		require.NoError(t, err)

		assert.Equal(t, 320, next.Screen.Width)
		assert.Equal(t, "secret", next.GitHub.Token)
		assert.Same(t, doc, next.Editor.Active, "untouched editor keeps document identity")
		assert.Equal(t, base.Revision+1, next.Revision)
		assert.Equal(t, 800, base.Screen.Width, "base revision must not change")
	})

	t.Run("Editor Clones Document", func(t *testing.T) {
		next, err := ApplyPatch(base, map[string]any{
			"editor": map[string]any{
				"active": map[string]any{
					"name":    "After",
					"options": map[string]any{"isUntrusted": false},
				},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "After", next.ActiveDocument().Name)
		assert.True(t, next.ActiveDocument().IsTrusted())
		assert.Equal(t, "Before", doc.Name, "original document must not change")
		assert.NotSame(t, doc, next.Editor.Active)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		_, err := ApplyPatch(base, map[string]any{"viewport": 3})
		assert.ErrorIs(t, err, ErrInvalidPatch)
	})

	t.Run("Revision Is Reserved", func(t *testing.T) {
		_, err := ApplyPatch(base, map[string]any{"revision": 9})
		assert.ErrorIs(t, err, ErrInvalidPatch)
	})

	t.Run("Negative Width Fails Validation", func(t *testing.T) {
		_, err := ApplyPatch(base, map[string]any{"screen": map[string]any{"width": -1}})
		assert.ErrorIs(t, err, ErrInvalidTree)
	})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(NewTree()))
	assert.Error(t, Validate(nil))

	bad := NewTree().WithActiveDocument(&Document{Name: "no id"})
	assert.ErrorIs(t, Validate(bad), ErrInvalidTree)

	badOrigin := NewTree().WithActiveDocument(&Document{ID: "x", Source: &Source{Origin: "ftp"}})
	assert.Error(t, Validate(badOrigin))
}
