package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Zones != 50 || cfg.RowsPerZone != 20 || cfg.SeatsPerRow != 65 {
		t.Fatalf("default dimensions: %d x %d x %d", cfg.Zones, cfg.RowsPerZone, cfg.SeatsPerRow)
	}
	if cfg.MaxBlock != 5 {
		t.Fatalf("default max block: %d", cfg.MaxBlock)
	}
	if cfg.Store != StoreRedis {
		t.Fatalf("default store: %s", cfg.Store)
	}
	if cfg.TotalSeats() != 65000 {
		t.Fatalf("total seats: %d", cfg.TotalSeats())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "usher.json")
	data := []byte(`{"eventId":7,"zones":2,"rowsPerZone":3,"seatsPerRow":10,"maxBlock":4,"store":"pebble","redis":{"addr":"redis:6379"}}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.EventID != 7 || cfg.Zones != 2 || cfg.SeatsPerRow != 10 {
		t.Fatalf("loaded values: %+v", cfg)
	}
	if cfg.Store != StorePebble {
		t.Fatalf("store: %s", cfg.Store)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("redis addr: %s", cfg.Redis.Addr)
	}
	// Fields absent from the file keep their defaults.
	if cfg.OpTimeoutMs != Default().OpTimeoutMs {
		t.Fatalf("op timeout default lost: %d", cfg.OpTimeoutMs)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("empty path should yield defaults")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	t.Setenv("USHER_ZONES", "10")
	t.Setenv("USHER_SEATS_PER_ROW", "32")
	t.Setenv("USHER_STORE", "pebble")
	t.Setenv("USHER_REDIS_ADDR", "10.0.0.1:6379")
	FromEnv(&cfg)
	if cfg.Zones != 10 || cfg.SeatsPerRow != 32 {
		t.Fatalf("env override dimensions: %d, %d", cfg.Zones, cfg.SeatsPerRow)
	}
	if cfg.Store != StorePebble {
		t.Fatalf("env override store: %s", cfg.Store)
	}
	if cfg.Redis.Addr != "10.0.0.1:6379" {
		t.Fatalf("env override redis addr: %s", cfg.Redis.Addr)
	}
}

func TestValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.EventID = 0 },
		func(c *Config) { c.Zones = 0 },
		func(c *Config) { c.RowsPerZone = -1 },
		func(c *Config) { c.SeatsPerRow = 0 },
		func(c *Config) { c.MaxBlock = 0 },
		func(c *Config) { c.MaxBlock = c.SeatsPerRow + 1 },
		func(c *Config) { c.Store = "etcd" },
		func(c *Config) { c.OpTimeoutMs = 0 },
	}
	for i, mutate := range bad {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	if got := DefaultDataDir(); got != "/custom/data/usher" {
		t.Fatalf("xdg override: %s", got)
	}
}
