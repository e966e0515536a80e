package serverrun

import (
	"context"
	"testing"
	"time"

	cfgpkg "github.com/rzbill/usher/internal/config"
	pebblestore "github.com/rzbill/usher/internal/storage/pebble"
)

func TestRunStopsOnCancel(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Store = cfgpkg.StorePebble
	cfg.Zones = 1
	cfg.RowsPerZone = 1

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{
			DataDir:     t.TempDir(),
			HTTPAddr:    "127.0.0.1:0",
			Fsync:       pebblestore.FsyncModeNever,
			Config:      cfg,
			InitOnStart: true,
		})
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Store = "bogus"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := Run(ctx, Options{DataDir: t.TempDir(), HTTPAddr: "127.0.0.1:0", Config: cfg}); err == nil {
		t.Fatalf("expected config error")
	}
}
