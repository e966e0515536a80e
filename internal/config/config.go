package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	EventID     int    `json:"eventId"`
	Zones       int    `json:"zones"`
	RowsPerZone int    `json:"rowsPerZone"`
	SeatsPerRow int    `json:"seatsPerRow"`
	MaxBlock    int    `json:"maxBlock"`
	Store       string `json:"store"`
	Redis       Redis  `json:"redis"`
	// OpTimeoutMs bounds every store-facing call issued by the seats engine.
	OpTimeoutMs int `json:"opTimeoutMs"`
}

// Redis holds connection settings for the Redis store backend.
type Redis struct {
	Addr           string `json:"addr"`
	Password       string `json:"password"`
	DB             int    `json:"db"`
	PoolSize       int    `json:"poolSize"`
	DialTimeoutMs  int    `json:"dialTimeoutMs"`
	ReadTimeoutMs  int    `json:"readTimeoutMs"`
	WriteTimeoutMs int    `json:"writeTimeoutMs"`
}

// Store backend names.
const (
	StoreRedis  = "redis"
	StorePebble = "pebble"
)

// Default returns built-in defaults matching the stock 65k-seat inventory.
func Default() Config {
	return Config{
		EventID:     1,
		Zones:       50,
		RowsPerZone: 20,
		SeatsPerRow: 65,
		MaxBlock:    5,
		Store:       StoreRedis,
		Redis: Redis{
			Addr:           "127.0.0.1:6379",
			PoolSize:       100,
			DialTimeoutMs:  2000,
			ReadTimeoutMs:  1000,
			WriteTimeoutMs: 1000,
		},
		OpTimeoutMs: 2000,
	}
}

// Load reads configuration from a JSON file. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects inventory dimensions the engine cannot serve.
func (c Config) Validate() error {
	if c.EventID < 1 {
		return fmt.Errorf("config: eventId must be >= 1, got %d", c.EventID)
	}
	if c.Zones < 1 || c.RowsPerZone < 1 {
		return fmt.Errorf("config: zones and rowsPerZone must be >= 1, got %d x %d", c.Zones, c.RowsPerZone)
	}
	if c.SeatsPerRow < 1 {
		return fmt.Errorf("config: seatsPerRow must be >= 1, got %d", c.SeatsPerRow)
	}
	if c.MaxBlock < 1 || c.MaxBlock > c.SeatsPerRow {
		return fmt.Errorf("config: maxBlock must be in [1, %d], got %d", c.SeatsPerRow, c.MaxBlock)
	}
	switch c.Store {
	case StoreRedis, StorePebble:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store)
	}
	if c.OpTimeoutMs < 1 {
		return fmt.Errorf("config: opTimeoutMs must be >= 1, got %d", c.OpTimeoutMs)
	}
	return nil
}

// OpTimeout returns the per-operation store timeout as a duration.
func (c Config) OpTimeout() time.Duration {
	return time.Duration(c.OpTimeoutMs) * time.Millisecond
}

// TotalRows returns the number of rows in the inventory.
func (c Config) TotalRows() int { return c.Zones * c.RowsPerZone }

// TotalSeats returns the number of seats in the inventory.
func (c Config) TotalSeats() int { return c.Zones * c.RowsPerZone * c.SeatsPerRow }
