package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	cfgpkg "github.com/rzbill/usher/internal/config"
	"github.com/rzbill/usher/internal/storage"
	pebblestore "github.com/rzbill/usher/internal/storage/pebble"
	redisstore "github.com/rzbill/usher/internal/storage/redis"
)

// Options for building the Runtime.
type Options struct {
	// DataDir holds the embedded store when Config.Store is "pebble".
	DataDir string
	Fsync   pebblestore.FsyncMode
	// FsyncInterval is the group-commit window when Fsync is interval mode.
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Runtime wires configuration and the selected row store for one instance.
type Runtime struct {
	store  storage.RowStore
	config cfgpkg.Config
}

// Open validates the configuration and opens the configured store backend.
func Open(opts Options) (*Runtime, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	var (
		store storage.RowStore
		err   error
	)
	switch opts.Config.Store {
	case cfgpkg.StoreRedis:
		rc := opts.Config.Redis
		store = redisstore.Open(redisstore.Options{
			Addr:         rc.Addr,
			Password:     rc.Password,
			DB:           rc.DB,
			PoolSize:     rc.PoolSize,
			DialTimeout:  msDuration(rc.DialTimeoutMs),
			ReadTimeout:  msDuration(rc.ReadTimeoutMs),
			WriteTimeout: msDuration(rc.WriteTimeoutMs),
		})
	case cfgpkg.StorePebble:
		if opts.DataDir == "" {
			opts.DataDir = cfgpkg.DefaultDataDir()
		}
		store, err = pebblestore.Open(pebblestore.Options{
			DataDir:       opts.DataDir,
			Fsync:         opts.Fsync,
			FsyncInterval: opts.FsyncInterval,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("runtime: unknown store backend %q", opts.Config.Store)
	}
	return &Runtime{store: store, config: opts.Config}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// CheckHealth verifies the row store is reachable.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.store == nil {
		return errors.New("store not open")
	}
	return r.store.Ping(ctx)
}

// Store returns the configured row store.
func (r *Runtime) Store() storage.RowStore { return r.store }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
