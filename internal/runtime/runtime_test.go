package runtime

import (
	"context"
	"testing"

	cfgpkg "github.com/rzbill/usher/internal/config"
	pebblestore "github.com/rzbill/usher/internal/storage/pebble"
)

func pebbleConfig() cfgpkg.Config {
	cfg := cfgpkg.Default()
	cfg.Store = cfgpkg.StorePebble
	return cfg
}

func TestOpenPebbleBackend(t *testing.T) {
	rt, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: pebbleConfig()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()
	if rt.Store() == nil {
		t.Fatalf("store not wired")
	}
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	cfg := pebbleConfig()
	cfg.Zones = 0
	if _, err := Open(Options{DataDir: t.TempDir(), Config: cfg}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := pebbleConfig()
	cfg.SeatsPerRow = 32
	rt, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()
	if rt.Config().SeatsPerRow != 32 {
		t.Fatalf("config not carried: %d", rt.Config().SeatsPerRow)
	}
}
