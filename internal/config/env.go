package config

import (
	"os"
	"strconv"
)

// FromEnv overlays USHER_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("USHER_EVENT_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EventID = n
		}
	}
	if v := os.Getenv("USHER_ZONES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Zones = n
		}
	}
	if v := os.Getenv("USHER_ROWS_PER_ZONE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RowsPerZone = n
		}
	}
	if v := os.Getenv("USHER_SEATS_PER_ROW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SeatsPerRow = n
		}
	}
	if v := os.Getenv("USHER_MAX_BLOCK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxBlock = n
		}
	}
	if v := os.Getenv("USHER_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("USHER_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("USHER_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("USHER_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("USHER_REDIS_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.PoolSize = n
		}
	}
	if v := os.Getenv("USHER_OP_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.OpTimeoutMs = n
		}
	}
}
