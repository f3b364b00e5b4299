package ports

import (
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/toolbar"
)

// ToolbarEngine is the derivation surface used by transport adapters (HTTP, MCP).
// Implementations must be safe for concurrent use.
type ToolbarEngine interface {
	// Toolbar derives both item lists for a tree.
	Toolbar(tree *domain.Tree) (toolbar.Toolbar, error)

	// Mode returns the toolbar variant selected by the active document.
	Mode(tree *domain.Tree) (domain.Mode, error)

	// Resolve finds the item at path and returns the intent its activation yields.
	// A nil intent with a nil error means the item is currently a no-op.
	Resolve(tree *domain.Tree, path ...string) (intent.Intent, error)
}
