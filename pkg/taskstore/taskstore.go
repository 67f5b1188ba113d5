package taskstore

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskbridge/taskstore/internal/log"
	"github.com/taskbridge/taskstore/internal/model"
	"github.com/taskbridge/taskstore/internal/storage"
	storageio "github.com/taskbridge/taskstore/internal/storage/io"
	"github.com/taskbridge/taskstore/internal/storage/memory"
	"github.com/taskbridge/taskstore/internal/storage/metrics"
)

// Kind identifies a store implementation.
type Kind string

const (
	// KindMemory is the in-process, non-persistent store. It is the default
	// and currently the only kind.
	KindMemory Kind = "memory"
)

// Config configures the store returned by [New].
//
// All fields are optional, an empty Config{} yields an in-memory store with
// the "default" user namespace and no logging.
type Config struct {
	// Kind selects the store implementation. Default: [KindMemory].
	Kind Kind

	// DefaultUserID is the user namespace used when operations are called
	// with an empty user ID. Default: "default".
	DefaultUserID string

	// Logger receives structured log output. Default: noop (silent). See the
	// log sub-package for the interface.
	Logger log.Logger

	// MetricsRegisterer enables Prometheus metrics for every storage
	// operation when set. Default: nil (no metrics).
	MetricsRegisterer prometheus.Registerer
}

func (c *Config) defaults() error {
	if c.Kind == "" {
		c.Kind = KindMemory
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// New creates a store of the configured kind.
//
// An unknown kind fails with an error matching [ErrNotValid].
func New(cfg Config) (Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var store storage.Store
	switch cfg.Kind {
	case KindMemory:
		memStore, err := memory.NewStore(memory.StoreConfig{
			DefaultUserID: cfg.DefaultUserID,
			Logger:        cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create memory store: %w", err)
		}
		store = memStore
	default:
		return nil, fmt.Errorf("unknown storage kind %q: %w", cfg.Kind, model.ErrNotValid)
	}

	if cfg.MetricsRegisterer != nil {
		measured, err := metrics.NewStore(metrics.StoreConfig{
			Next:       store,
			Registerer: cfg.MetricsRegisterer,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create measured store: %w", err)
		}
		store = measured
	}

	return store, nil
}

// LoadConfig reads store settings from a YAML file and returns the matching
// Config. The caller can then set a Logger or metrics registerer before
// passing it to [New]:
//
//	cfg, err := taskstore.LoadConfig(ctx, os.DirFS("/etc/bridge"), "store.yaml")
//	if err != nil { ... }
//	cfg.Logger = myLogger
//	store, err := taskstore.New(cfg)
func LoadConfig(ctx context.Context, fsys fs.FS, path string) (Config, error) {
	settings, err := storageio.NewSettingsYAMLRepository(fsys).GetStoreSettings(ctx, path)
	if err != nil {
		return Config{}, fmt.Errorf("could not load store settings: %w", err)
	}

	return Config{
		Kind:          Kind(settings.Kind),
		DefaultUserID: settings.DefaultUserID,
	}, nil
}
