package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/config"
	"github.com/jackzampolin/verbena/internal/home"
	"github.com/jackzampolin/verbena/internal/server"
)

var (
	serveHost  string
	servePort  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the verbena server",
	Long: `Start the verbena HTTP server.

The server loads the verb database, se-verb taxonomy, classification
overrides and study data from the verbena home directory.

The server provides:
  - /health  - Basic server health check
  - /ready   - Readiness check (data stores loaded)
  - /swagger - Interactive API documentation

Examples:
  verbena serve                    # Start on default port 8080
  verbena serve --port 3000        # Start on custom port
  verbena serve --host 0.0.0.0     # Bind to all interfaces
  verbena serve --watch            # Pick up data files edited on disk`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// A --home override should find the config that lives there.
		cfgPath := cfgFile
		if cfgPath == "" && h.ConfigExists() {
			cfgPath = h.ConfigPath()
		}
		mgr, err := config.NewManager(cfgPath)
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel(cfg.Log.Level),
		}))

		// Flags beat config, config beats defaults.
		host := cfg.Server.Host
		if cmd.Flags().Changed("host") || host == "" {
			host = serveHost
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") || port == "" {
			port = servePort
		}

		// Create server
		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: mgr,
			Logger:        logger,
			WatchData:     serveWatch,
		})
		if err != nil {
			return err
		}

		// Config edits apply without a restart.
		mgr.WatchConfig()

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

// logLevel maps the configured level name to a slog level.
func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload data files when they change on disk")

	rootCmd.AddCommand(serveCmd)
}
