// Package cli wires configuration into the engine, session manager and adapters used by the
// commandbar commands.
package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/commandbar"
	"github.com/aretw0/commandbar/internal/config"
	"github.com/aretw0/commandbar/internal/logging"
	"github.com/aretw0/commandbar/pkg/adapters/file"
	"github.com/aretw0/commandbar/pkg/adapters/memory"
	"github.com/aretw0/commandbar/pkg/adapters/redis"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/observability"
	"github.com/aretw0/commandbar/pkg/persistence/middleware"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/aretw0/commandbar/pkg/reducer"
	"github.com/aretw0/commandbar/pkg/session"
	"github.com/aretw0/commandbar/pkg/toolbar"
	backend "github.com/redis/go-redis/v9"
)

// App holds everything a command needs.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Engine   *commandbar.Engine
	Sessions *session.Manager
	Metrics  *observability.Metrics
	// Queue is the redis intent queue, nil unless sink.kind is "redis".
	Queue *redis.Sink

	closers []io.Closer
}

// NewApp builds the application graph described by cfg.
func NewApp(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	app := &App{Config: cfg, Logger: logger}

	var (
		store  ports.TreeStore
		locker ports.DistributedLocker
		client *backend.Client
	)
	switch cfg.Store.Backend {
	case "memory":
		store = memory.NewStore()
	case "file":
		store = file.New(cfg.Store.Dir)
	case "redis":
		client = app.redisClient()
		store = redis.NewFromClient(client,
			redis.WithPrefix(cfg.Store.Redis.Prefix),
			redis.WithTTL(cfg.Store.Redis.TTL.Duration),
		)
		locker = redis.NewLocker(client, cfg.Store.Redis.Prefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	store, err := protect(store, cfg.Store)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	var sink ports.IntentSink = ports.DiscardSink
	if cfg.Sink.Kind == "redis" {
		if client == nil {
			client = app.redisClient()
		}
		app.Queue = redis.NewSink(client, cfg.Sink.Queue)
		sink = app.Queue
	}
	sink = logging.SinkMiddleware(logger, sink)

	engineOpts := []commandbar.Option{commandbar.WithLogger(logger)}
	if cfg.Server.Metrics {
		app.Metrics = observability.NewMetrics()
		sink = app.Metrics.Sink(sink)
		engineOpts = append(engineOpts, commandbar.WithDerivationHooks(app.Metrics.Hooks()))
	}
	engineOpts = append(engineOpts, commandbar.WithIntentSink(sink))

	sessionOpts := []session.Option{
		session.WithLogger(logger),
		session.WithReducer(reducer.Reduce),
		session.WithSink(sink),
	}
	if locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(locker))
		if ttl := cfg.Store.Redis.LockTTL.Duration; ttl > 0 {
			sessionOpts = append(sessionOpts, session.WithLockTTL(ttl))
		}
	}

	app.Engine = commandbar.New(engineOpts...)
	app.Sessions = session.NewManager(store, sessionOpts...)
	logger.Debug("Application wired", "store", cfg.Store.Backend, "sink", cfg.Sink.Kind, "metrics", cfg.Server.Metrics)
	return app, nil
}

// protect wraps store with the token middlewares enabled in cfg.
func protect(store ports.TreeStore, cfg config.StoreConfig) (ports.TreeStore, error) {
	var mws []middleware.Middleware
	if cfg.RedactToken {
		mws = append(mws, middleware.NewRedactMiddleware())
	}
	if cfg.EncryptionKey != "" {
		enc := middleware.EncryptionConfig{}
		var err error
		if enc.ActiveKey, err = base64.StdEncoding.DecodeString(cfg.EncryptionKey); err != nil {
			return nil, fmt.Errorf("store.encryption_key: %w", err)
		}
		for i, k := range cfg.FallbackKeys {
			key, err := base64.StdEncoding.DecodeString(k)
			if err != nil {
				return nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
			}
			enc.FallbackKeys = append(enc.FallbackKeys, key)
		}
		mw, err := middleware.NewEncryptionMiddleware(enc)
		if err != nil {
			return nil, fmt.Errorf("store.encryption_key: %w", err)
		}
		mws = append(mws, mw)
	}
	return middleware.Chain(store, mws...), nil
}

func (a *App) redisClient() *backend.Client {
	r := a.Config.Store.Redis
	client := backend.NewClient(&backend.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	})
	a.closers = append(a.closers, client)
	return client
}

// Close releases connections opened by NewApp.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// InitialTree loads the fixture at path (an empty path yields an empty tree) and stamps the
// configured host on it when the fixture does not name one.
func (a *App) InitialTree(path string) (*domain.Tree, error) {
	tree := domain.NewTree()
	if path != "" {
		var err error
		tree, err = file.LoadTree(path)
		if err != nil {
			return nil, err
		}
	}
	if tree.Host.Current == "" && a.Config.Host != "" {
		tree = tree.WithHost(a.Config.Host)
	}
	return tree, nil
}

// StartSession loads sessionID or starts it from the fixture at path. A fixture given
// explicitly replaces any stored tree.
func (a *App) StartSession(ctx context.Context, sessionID, path string) (*domain.Tree, error) {
	tree, err := a.InitialTree(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := a.Sessions.Save(ctx, sessionID, tree); err != nil {
			return nil, err
		}
		return tree, nil
	}
	return a.Sessions.LoadOrStart(ctx, sessionID, tree)
}

// Transition dispatches in through the session manager, so the reducer, store and sink all
// see it. It matches the Transition hooks of commandbar.Runner and the TUI.
func (a *App) Transition(sessionID string) func(ctx context.Context, tree *domain.Tree, in intent.Intent) (*domain.Tree, error) {
	return func(ctx context.Context, _ *domain.Tree, in intent.Intent) (*domain.Tree, error) {
		return a.Sessions.Dispatch(ctx, sessionID, in)
	}
}

// Routes of the runner view.
const (
	RunnerHomeRoute        = "./#/"
	RunnerRefreshRoute     = "./#/refresh"
	RunnerHardRefreshRoute = "./#/refresh?hard=true"
)

// RunnerToolbar builds the header of the runner view for tree. The go-back item is offered
// only when withBack is set, i.e. the runner was opened from the editor.
func (a *App) RunnerToolbar(tree *domain.Tree, withBack bool) toolbar.Toolbar {
	props := toolbar.RunnerProps{
		Refresh:     intent.Static(intent.Navigate{Route: RunnerRefreshRoute}),
		HardRefresh: intent.Static(intent.Navigate{Route: RunnerHardRefreshRoute}),
	}
	if doc := tree.ActiveDocument(); domain.ModeOf(doc.ID) == domain.ModeNormal {
		props.DocumentName = doc.Name
	}
	if withBack {
		props.GoBack = intent.Static(intent.Navigate{Route: RunnerHomeRoute})
	}
	return toolbar.RunnerHeader(props)
}
