package toolbar

import (
	"strings"

	"github.com/aretw0/commandbar/pkg/derive"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
)

// Derivation is a derivation over tree snapshots.
type Derivation[T any] = *derive.Derivation[*domain.Tree, T]

// Selectors is the derivation graph of the editor toolbar. Every field is a memoized
// derivation; the graph holds one cache per node shared by every consumer.
//
// Selectors is not safe for concurrent use. Hosts that render from several goroutines go
// through commandbar.Engine, which serialises access.
type Selectors struct {
	// Leaves.
	ActiveDocument   Derivation[*domain.Document]
	ActiveDocumentID Derivation[string]
	Token            Derivation[string]
	IsLoggingInOrOut Derivation[bool]
	Width            Derivation[int]
	CurrentHost      Derivation[string]

	IsRunnableOnThisHost Derivation[bool]
	IsCustomFunctions    Derivation[bool]
	IsTrusted            Derivation[bool]
	IsLoggedIn           Derivation[bool]
	ShouldHideTitle      Derivation[bool]

	Mode     Derivation[domain.Mode]
	RunGroup Derivation[[]Item]
	Items    Derivation[[]Item]
	FarItems Derivation[[]Item]
}

// Option configures the graph built by New.
type Option func(*options)

type options struct {
	hooks derive.Hooks
}

// WithHooks attaches observability hooks to every node of the graph.
func WithHooks(hooks derive.Hooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// New builds the derivation graph. Intents are produced through creators; nil constructors
// fall back to intent.DefaultCreators.
func New(creators intent.Creators, opts ...Option) *Selectors {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	hooks := derive.WithHooks(o.hooks)
	b := builder{creators: creators.Complete()}

	s := &Selectors{}
	// A value-equal document keeps the cached pointer, so trees decoded by a store do not
	// invalidate the graph.
	s.ActiveDocument = derive.Leaf("editor.activeDocument", func(t *domain.Tree) *domain.Document {
		return t.ActiveDocument()
	}, derive.WithEqual(sameDocument), hooks)
	s.ActiveDocumentID = derive.Leaf("editor.activeDocumentID", func(t *domain.Tree) string {
		return t.ActiveDocument().ID
	}, hooks)
	s.Token = derive.Leaf("github.token", func(t *domain.Tree) string {
		return t.GitHub.Token
	}, hooks)
	s.IsLoggingInOrOut = derive.Leaf("github.isLoggingInOrOut", func(t *domain.Tree) bool {
		return t.GitHub.IsLoggingInOrOut
	}, hooks)
	s.Width = derive.Leaf("screen.width", func(t *domain.Tree) int {
		return t.Screen.Width
	}, hooks)
	s.CurrentHost = derive.Leaf("host.current", func(t *domain.Tree) string {
		return t.Host.Current
	}, hooks)

	s.IsRunnableOnThisHost = derive.Derive2(s.ActiveDocument, s.CurrentHost, isRunnableOn,
		derive.WithName("host.isRunnableOnThisHost"), hooks)
	s.IsCustomFunctions = derive.Derive1(s.ActiveDocument, func(d *domain.Document) bool {
		return d.IsCustomFunctions
	}, derive.WithName("editor.isCustomFunctions"), hooks)
	s.IsTrusted = derive.Derive1(s.ActiveDocument, func(d *domain.Document) bool {
		return d.IsTrusted()
	}, derive.WithName("editor.isTrusted"), hooks)
	s.IsLoggedIn = derive.Derive1(s.Token, func(token string) bool {
		return token != ""
	}, derive.WithName("github.isLoggedIn"), hooks)
	s.ShouldHideTitle = derive.Derive1(s.Width, func(width int) bool {
		return width < domain.TaskPaneWidth
	}, derive.WithName("header.shouldHideTitle"), hooks)

	s.Mode = derive.Derive1(s.ActiveDocumentID, domain.ModeOf,
		derive.WithName("header.mode"), hooks)

	s.RunGroup = derive.Derive4(s.ActiveDocument, s.IsRunnableOnThisHost, s.IsCustomFunctions, s.IsTrusted,
		b.runGroup, derive.WithName("header.runGroup"), hooks)
	s.Items = derive.Derive5(s.Mode, s.ActiveDocument, s.ShouldHideTitle, s.IsLoggedIn, s.RunGroup,
		b.items, derive.WithName("header.items"), hooks)
	s.FarItems = derive.Derive3(s.Mode, s.IsLoggedIn, s.IsLoggingInOrOut,
		b.farItems, derive.WithName("header.farItems"), hooks)

	return s
}

// Toolbar pulls both item lists for t.
// It panics with *domain.InvalidModeError if the graph ever yields a mode outside the enumeration.
func (s *Selectors) Toolbar(t *domain.Tree) Toolbar {
	return Toolbar{
		Items:    s.Items.Select(t),
		FarItems: s.FarItems.Select(t),
	}
}

// Stats reports the counters of every node by name.
func (s *Selectors) Stats() map[string]derive.Stats {
	stats := make(map[string]derive.Stats)
	for _, n := range s.nodes() {
		stats[n.Name()] = n.Stats()
	}
	return stats
}

// Reset drops every cache in the graph.
func (s *Selectors) Reset() {
	for _, n := range s.nodes() {
		n.Reset()
	}
}

type node interface {
	Name() string
	Stats() derive.Stats
	Reset()
}

func (s *Selectors) nodes() []node {
	return []node{
		s.ActiveDocument, s.ActiveDocumentID, s.Token, s.IsLoggingInOrOut, s.Width, s.CurrentHost,
		s.IsRunnableOnThisHost, s.IsCustomFunctions, s.IsTrusted, s.IsLoggedIn, s.ShouldHideTitle,
		s.Mode, s.RunGroup, s.Items, s.FarItems,
	}
}

func sameDocument(a, b any) bool {
	da, _ := a.(*domain.Document)
	db, _ := b.(*domain.Document)
	return da.Equal(db)
}

// isRunnableOn reports whether doc can run in the current host. Documents without a host run
// anywhere; otherwise the host names must match, ignoring case.
func isRunnableOn(doc *domain.Document, host string) bool {
	if doc.Host == "" {
		return true
	}
	return strings.EqualFold(doc.Host, host)
}
