package commandbar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/commandbar/internal/logging"
	"github.com/aretw0/commandbar/pkg/derive"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/aretw0/commandbar/pkg/toolbar"
)

// Engine is the high-level entry point of the library.
// It owns one toolbar derivation graph and serialises access to it, so a single Engine can
// serve concurrent hosts (HTTP handlers, MCP tools) while every render shares the same caches.
type Engine struct {
	mu        sync.Mutex
	selectors *toolbar.Selectors

	creators intent.Creators
	hooks    derive.Hooks
	sink     ports.IntentSink
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithIntentSink sets where Activate sends intents (default: ports.DiscardSink).
func WithIntentSink(sink ports.IntentSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithCreators injects the intent constructors used by the derivations.
func WithCreators(creators intent.Creators) Option {
	return func(e *Engine) {
		e.creators = creators
	}
}

// WithDerivationHooks registers observability hooks on every derivation of the graph.
func WithDerivationHooks(hooks derive.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		creators: intent.DefaultCreators(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.sink == nil {
		e.sink = ports.DiscardSink
	}
	e.selectors = toolbar.New(e.creators, toolbar.WithHooks(e.hooks))
	return e
}

// Toolbar derives both item lists for tree. Between state changes it returns the very same
// slices, so callers may compare results by identity.
func (e *Engine) Toolbar(tree *domain.Tree) (tb toolbar.Toolbar, err error) {
	err = e.derive(tree, func() {
		tb = e.selectors.Toolbar(tree)
	})
	return tb, err
}

// Mode returns the toolbar variant selected by the active document of tree.
func (e *Engine) Mode(tree *domain.Tree) (mode domain.Mode, err error) {
	err = e.derive(tree, func() {
		mode = e.selectors.Mode.Select(tree)
	})
	return mode, err
}

// Resolve finds the item at path and returns the intent its activation yields.
// It returns domain.ErrItemNotFound for an unknown path and domain.ErrNoAction for an inert
// item. A nil intent with a nil error means the item is a no-op right now (e.g. the account
// button during a login exchange).
func (e *Engine) Resolve(tree *domain.Tree, path ...string) (intent.Intent, error) {
	tb, err := e.Toolbar(tree)
	if err != nil {
		return nil, err
	}
	item, err := tb.Find(path...)
	if err != nil {
		return nil, err
	}
	if !item.Actionable() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoAction, item.Key)
	}
	return item.Action(), nil
}

// Activate resolves the item at path and hands the resulting intent to the sink.
// The dispatched intent is returned; nil means nothing was dispatched.
func (e *Engine) Activate(ctx context.Context, tree *domain.Tree, path ...string) (intent.Intent, error) {
	in, err := e.Resolve(tree, path...)
	if err != nil {
		return nil, err
	}
	if in == nil {
		e.logger.Debug("Item activation is a no-op", "path", path)
		return nil, nil
	}

	e.logger.Debug("Dispatching intent", "path", path, "intent", in.Type())
	if err := e.sink.Dispatch(ctx, in); err != nil {
		return in, fmt.Errorf("failed to dispatch %s: %w", in.Type(), err)
	}
	return in, nil
}

// Stats returns the hit and recompute counters of every derivation, keyed by name.
func (e *Engine) Stats() map[string]derive.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectors.Stats()
}

// Reset drops every cached derivation.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectors.Reset()
}

// derive runs fn under the engine lock. An invalid mode inside the graph is an
// internal-consistency fault; it is turned into an error here instead of crashing the host.
func (e *Engine) derive(tree *domain.Tree, fn func()) (err error) {
	if tree == nil {
		return errors.New("tree is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var modeErr *domain.InvalidModeError
		if asErr, ok := r.(error); ok && errors.As(asErr, &modeErr) {
			e.logger.Error("Toolbar derivation aborted", "revision", tree.Revision, "err", modeErr)
			err = fmt.Errorf("failed to derive toolbar: %w", modeErr)
			return
		}
		panic(r)
	}()

	fn()
	return nil
}
