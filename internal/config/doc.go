// Package config provides loading and environment overlay for usher's
// runtime configuration: inventory dimensions (zones, rows per zone, seats
// per row, max block size), store backend selection, and store timeouts.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/usher.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	if err := cfg.Validate(); err != nil { /* handle */ }
package config
