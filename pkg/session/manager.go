package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/commandbar/internal/logging"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed session lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// Reducer computes the tree that follows an intent. It reports false when the intent does not
// touch state.
type Reducer func(tree *domain.Tree, in intent.Intent) (*domain.Tree, bool)

// Change describes one committed transition of a session.
type Change struct {
	SessionID string
	Intent    intent.Intent
	Previous  *domain.Tree
	Tree      *domain.Tree
	Diff      *domain.TreeDiff
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.TreeStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	reducer Reducer
	sink    ports.IntentSink // Receives every dispatched intent after the state was committed
	logger  *slog.Logger

	subMu   sync.RWMutex
	subs    map[int]chan Change
	nextSub int
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithReducer sets the transition function used by Dispatch.
func WithReducer(r Reducer) Option {
	return func(m *Manager) {
		m.reducer = r
	}
}

// WithSink forwards every dispatched intent to sink once the new tree is saved.
func WithSink(sink ports.IntentSink) Option {
	return func(m *Manager) {
		m.sink = sink
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.TreeStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
		subs:    make(map[int]chan Change),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Tree, error) {
	var tree *domain.Tree
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		tree, err = m.store.Load(ctx, sessionID)
		return err
	})
	return tree, err
}

// LoadOrStart tries to load a session. If not found, it saves and returns initial (or an
// empty tree when initial is nil).
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string, initial *domain.Tree) (*domain.Tree, error) {
	var tree *domain.Tree
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		tree, err = m.store.Load(ctx, sessionID)
		if err == nil {
			return nil
		}

		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		tree = initial
		if tree == nil {
			tree = domain.NewTree()
		}

		// Persist immediately to reserve the ID
		if err := m.store.Save(ctx, sessionID, tree); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	return tree, err
}

// Save replaces the session tree.
func (m *Manager) Save(ctx context.Context, sessionID string, tree *domain.Tree) error {
	if err := domain.Validate(tree); err != nil {
		return err
	}
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		prev, err := m.store.Load(ctx, sessionID)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if err := m.store.Save(ctx, sessionID, tree); err != nil {
			return err
		}
		m.publish(Change{SessionID: sessionID, Previous: prev, Tree: tree, Diff: domain.DiffTrees(prev, tree)})
		return nil
	})
}

// Patch applies a loosely typed patch (see domain.ApplyPatch) to the session tree, starting
// the session if needed.
func (m *Manager) Patch(ctx context.Context, sessionID string, patch map[string]any) (*domain.Tree, error) {
	var next *domain.Tree
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		prev, err := m.loadOrEmpty(ctx, sessionID)
		if err != nil {
			return err
		}
		next, err = domain.ApplyPatch(prev, patch)
		if err != nil {
			return err
		}
		if err := m.store.Save(ctx, sessionID, next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		m.publish(Change{SessionID: sessionID, Previous: prev, Tree: next, Diff: domain.DiffTrees(prev, next)})
		return nil
	})
	return next, err
}

// Dispatch reduces in against the session tree, saves the result and forwards in to the sink.
// The returned tree is the committed one (unchanged when the reducer ignored the intent).
func (m *Manager) Dispatch(ctx context.Context, sessionID string, in intent.Intent) (*domain.Tree, error) {
	if in == nil {
		return nil, fmt.Errorf("cannot dispatch nil intent")
	}

	var next *domain.Tree
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		prev, err := m.loadOrEmpty(ctx, sessionID)
		if err != nil {
			return err
		}
		next, err = m.dispatch(ctx, sessionID, prev, in)
		return err
	})
	return next, err
}

// Resolver maps an item path of the toolbar derived from tree to the intent it yields.
// commandbar.Engine implements it.
type Resolver interface {
	Resolve(tree *domain.Tree, path ...string) (intent.Intent, error)
}

// Activate resolves path against the stored session tree and dispatches the resulting intent
// while holding the session lock, so the intent is reduced against the revision it came from.
// A nil intent (an item that is a no-op right now) leaves the tree as it is.
func (m *Manager) Activate(ctx context.Context, sessionID string, resolver Resolver, path ...string) (intent.Intent, *domain.Tree, error) {
	var (
		in   intent.Intent
		tree *domain.Tree
	)
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		prev, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		tree = prev

		in, err = resolver.Resolve(prev, path...)
		if err != nil || in == nil {
			return err
		}
		tree, err = m.dispatch(ctx, sessionID, prev, in)
		return err
	})
	if err != nil {
		return in, nil, err
	}
	return in, tree, nil
}

// dispatch runs the reducer, commits a changed tree and forwards in. The caller holds the lock.
func (m *Manager) dispatch(ctx context.Context, sessionID string, prev *domain.Tree, in intent.Intent) (*domain.Tree, error) {
	next := prev
	changed := false
	if m.reducer != nil {
		next, changed = m.reducer(prev, in)
	}

	m.logger.Debug("Dispatch",
		"session_id", sessionID,
		"intent", in.Type(),
		"prev_revision", prev.Revision,
		"next_revision", next.Revision,
		"changed", changed,
	)

	if changed {
		if err := m.store.Save(ctx, sessionID, next); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		m.publish(Change{SessionID: sessionID, Intent: in, Previous: prev, Tree: next, Diff: domain.DiffTrees(prev, next)})
	}

	if m.sink != nil {
		if err := m.sink.Dispatch(ctx, in); err != nil {
			return nil, fmt.Errorf("failed to forward %s: %w", in.Type(), err)
		}
	}
	return next, nil
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying tree store.
func (m *Manager) Store() ports.TreeStore {
	return m.store
}

// Subscribe returns a channel receiving every committed change until ctx is done.
// Slow subscribers miss changes rather than blocking writers.
func (m *Manager) Subscribe(ctx context.Context) <-chan Change {
	ch := make(chan Change, 16)

	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.subMu.Unlock()

	go func() {
		<-ctx.Done()
		m.subMu.Lock()
		delete(m.subs, id)
		close(ch)
		m.subMu.Unlock()
	}()
	return ch
}

func (m *Manager) publish(c Change) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()
	for _, ch := range m.subs {
		select {
		case ch <- c:
		default:
			m.logger.Warn("Dropping session change for slow subscriber", "session_id", c.SessionID)
		}
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func (m *Manager) loadOrEmpty(ctx context.Context, sessionID string) (*domain.Tree, error) {
	tree, err := m.store.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.NewTree(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return tree, nil
}
