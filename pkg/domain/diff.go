package domain

// TreeDiff lists the slices that changed between two revisions of a tree.
// It is designed to be serialized to JSON for partial updates on the client.
type TreeDiff struct {
	// Revision is always present to identify the target revision.
	Revision uint64 `json:"revision"`

	Editor *EditorState `json:"editor,omitempty"`
	GitHub *GitHubState `json:"github,omitempty"`
	Screen *ScreenState `json:"screen,omitempty"`
	Host   *HostState   `json:"host,omitempty"`
}

// DiffTrees calculates the difference between oldTree and newTree.
// If oldTree is nil, it returns a diff representing the entire newTree (initial load).
// It returns nil when nothing changed.
func DiffTrees(oldTree, newTree *Tree) *TreeDiff {
	if newTree == nil {
		return nil
	}

	diff := &TreeDiff{Revision: newTree.Revision}

	if oldTree == nil || !sameEditor(oldTree.Editor, newTree.Editor) {
		editor := newTree.Editor
		diff.Editor = &editor
	}
	if oldTree == nil || oldTree.GitHub != newTree.GitHub {
		gh := newTree.GitHub
		diff.GitHub = &gh
	}
	if oldTree == nil || oldTree.Screen != newTree.Screen {
		screen := newTree.Screen
		diff.Screen = &screen
	}
	if oldTree == nil || oldTree.Host != newTree.Host {
		host := newTree.Host
		diff.Host = &host
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// Slices returns the names of the changed slices, in tree order.
func (d *TreeDiff) Slices() []string {
	if d == nil {
		return nil
	}
	var names []string
	if d.Editor != nil {
		names = append(names, "editor")
	}
	if d.GitHub != nil {
		names = append(names, "github")
	}
	if d.Screen != nil {
		names = append(names, "screen")
	}
	if d.Host != nil {
		names = append(names, "host")
	}
	return names
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *TreeDiff) IsEmpty() bool {
	return d.Editor == nil &&
		d.GitHub == nil &&
		d.Screen == nil &&
		d.Host == nil
}

// sameEditor compares documents by identity, matching how derivations see them.
func sameEditor(a, b EditorState) bool {
	return a.Active == b.Active && a.Previous == b.Previous
}
