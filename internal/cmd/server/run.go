package serverrun

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cfgpkg "github.com/rzbill/usher/internal/config"
	"github.com/rzbill/usher/internal/runtime"
	httpserver "github.com/rzbill/usher/internal/server/http"
	seatsvc "github.com/rzbill/usher/internal/services/seats"
	pebblestore "github.com/rzbill/usher/internal/storage/pebble"
	logpkg "github.com/rzbill/usher/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Options configures a server run.
type Options struct {
	DataDir       string
	HTTPAddr      string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	// InitOnStart materializes the full inventory before serving traffic.
	InitOnStart bool
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = cfgpkg.DefaultDataDir()
	}

	rt, err := runtime.Open(runtime.Options{
		DataDir:       filepath.Join(dataDir, "store"),
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Config:        opts.Config,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	lcfg := &logpkg.Config{
		Level:  getenvDefault("USHER_LOG_LEVEL", "info"),
		Format: getenvDefault("USHER_LOG_FORMAT", "text"),
	}
	procLogger, err := logpkg.ApplyConfig(lcfg)
	if err != nil {
		procLogger = logpkg.NewLogger()
	}
	logpkg.RedirectStdLog(procLogger)

	cfg := rt.Config()
	procLogger.Info("starting usher server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("store", cfg.Store),
		logpkg.Int("zones", cfg.Zones),
		logpkg.Int("rows_per_zone", cfg.RowsPerZone),
		logpkg.Int("seats_per_row", cfg.SeatsPerRow),
		logpkg.Str("level", lcfg.Level),
		logpkg.Str("format", lcfg.Format),
	)

	seats := seatsvc.NewWithLogger(rt, procLogger.With(logpkg.Component("seats")))
	if opts.InitOnStart {
		if _, err := seats.InitializeAll(sctx); err != nil {
			return err
		}
	}

	hsrv := httpserver.NewWithService(rt, seats, procLogger.With(logpkg.Component("http")))
	errCh := make(chan error, 1)
	go func() { errCh <- hsrv.ListenAndServe(sctx, opts.HTTPAddr) }()

	select {
	case <-sctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	hsrv.Close()
	return nil
}
