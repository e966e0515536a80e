package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	clientcmd "github.com/rzbill/usher/internal/cmd/client"
	serverrun "github.com/rzbill/usher/internal/cmd/server"
	cfgpkg "github.com/rzbill/usher/internal/config"
	pebblestore "github.com/rzbill/usher/internal/storage/pebble"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "usher",
		Short: "usher seat allocation CLI",
		Long:  "usher allocates blocks of seats from a shared bit-vector inventory. This CLI manages the server and basic operations.",
	}

	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the usher HTTP server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			httpAddr, _ := cmd.Flags().GetString("http")
			store, _ := cmd.Flags().GetString("store")
			redisAddr, _ := cmd.Flags().GetString("redis-addr")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			initOnStart, _ := cmd.Flags().GetBool("init")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			mode := pebblestore.FsyncModeAlways
			switch fsyncMode {
			case "never":
				mode = pebblestore.FsyncModeNever
			case "interval":
				mode = pebblestore.FsyncModeInterval
			case "always":
				mode = pebblestore.FsyncModeAlways
			default:
				return fmt.Errorf("invalid --fsync; use always|interval|never")
			}

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)
			if store != "" {
				cfg.Store = store
			}
			if redisAddr != "" {
				cfg.Redis.Addr = redisAddr
			}
			if logLevel != "" {
				_ = os.Setenv("USHER_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				_ = os.Setenv("USHER_LOG_FORMAT", logFormat)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:       dataDir,
				HTTPAddr:      httpAddr,
				Fsync:         mode,
				FsyncInterval: time.Duration(fsyncIntervalMs) * time.Millisecond,
				Config:        cfg,
				InitOnStart:   initOnStart,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	serverStartCmd.Flags().String("config", os.Getenv("USHER_CONFIG"), "Path to JSON config file")
	serverStartCmd.Flags().String("http", ":8080", "HTTP listen address")
	serverStartCmd.Flags().String("store", "", "Store backend: redis|pebble (default from config)")
	serverStartCmd.Flags().String("redis-addr", "", "Redis address (overrides config)")
	serverStartCmd.Flags().String("data-dir", "", "Data directory for the pebble backend (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("fsync", "always", "Fsync mode for the pebble backend: always|interval|never")
	serverStartCmd.Flags().Int("fsync-interval-ms", 5, "When --fsync=interval, group-commit window in ms")
	serverStartCmd.Flags().Bool("init", true, "Initialize the full inventory before serving")
	serverStartCmd.Flags().String("log-level", os.Getenv("USHER_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("USHER_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	rootCmd.AddCommand(clientcmd.NewSeatsCommand(apiURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("USHER_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
