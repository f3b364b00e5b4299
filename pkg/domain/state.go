package domain

// TaskPaneWidth is the viewport width (in CSS pixels) below which the toolbar title collapses
// to an icon.
const TaskPaneWidth = 400

// EditorState is the editor slice of the tree.
type EditorState struct {
	// Active is the document shown in the editor. Nil means NullDocument.
	Active *Document `json:"active,omitempty" yaml:"active,omitempty" mapstructure:"active"`
	// Previous remembers the document to restore when the settings view closes.
	Previous *Document `json:"previous,omitempty" yaml:"previous,omitempty" mapstructure:"previous"`
}

// GitHubState is the auth slice of the tree.
type GitHubState struct {
	Token            string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`
	Username         string `json:"username,omitempty" yaml:"username,omitempty" mapstructure:"username"`
	IsLoggingInOrOut bool   `json:"isLoggingInOrOut,omitempty" yaml:"isLoggingInOrOut,omitempty" mapstructure:"isLoggingInOrOut"`
}

// ScreenState is the viewport slice of the tree.
type ScreenState struct {
	Width int `json:"width" yaml:"width" mapstructure:"width" validate:"gte=0"`
}

// HostState describes the application hosting the editor (e.g. "EXCEL", "WORD", "WEB").
type HostState struct {
	Current string `json:"current,omitempty" yaml:"current,omitempty" mapstructure:"current"`
}

// Tree is a snapshot of the normalized application state.
// A Tree is never mutated after it has been handed out: every transition builds a new Tree
// through the With* helpers, which copy the struct and bump Revision.
type Tree struct {
	Revision uint64      `json:"revision" yaml:"revision" mapstructure:"revision"`
	Editor   EditorState `json:"editor" yaml:"editor" mapstructure:"editor"`
	GitHub   GitHubState `json:"github" yaml:"github" mapstructure:"github"`
	Screen   ScreenState `json:"screen" yaml:"screen" mapstructure:"screen"`
	Host     HostState   `json:"host" yaml:"host" mapstructure:"host"`
}

// NewTree creates an empty tree with the null document active.
func NewTree() *Tree {
	return &Tree{}
}

// ActiveDocument returns the active document, falling back to NullDocument.
func (t *Tree) ActiveDocument() *Document {
	if t.Editor.Active == nil {
		return nullDocument
	}
	return t.Editor.Active
}

// next copies the tree for a transition.
func (t *Tree) next() *Tree {
	c := *t
	c.Revision++
	return &c
}

// WithActiveDocument returns a new revision with doc active.
func (t *Tree) WithActiveDocument(doc *Document) *Tree {
	c := t.next()
	c.Editor.Active = doc
	return c
}

// WithEditor returns a new revision with the editor slice replaced.
func (t *Tree) WithEditor(editor EditorState) *Tree {
	c := t.next()
	c.Editor = editor
	return c
}

// WithGitHub returns a new revision with the auth slice replaced.
func (t *Tree) WithGitHub(gh GitHubState) *Tree {
	c := t.next()
	c.GitHub = gh
	return c
}

// WithWidth returns a new revision with the viewport width replaced.
func (t *Tree) WithWidth(width int) *Tree {
	c := t.next()
	c.Screen.Width = width
	return c
}

// WithHost returns a new revision with the current host replaced.
func (t *Tree) WithHost(host string) *Tree {
	c := t.next()
	c.Host.Current = host
	return c
}
