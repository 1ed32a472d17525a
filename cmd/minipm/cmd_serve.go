package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"minipm/internal/config"
	"minipm/internal/logging"
	"minipm/internal/server"
	"minipm/internal/store"
)

var (
	serveAddr   string
	serveDB     string
	watchConfig bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GraphQL server",
	Long: `Starts the HTTP server with the GraphQL endpoint at /graphql/ and health
checks at /health/ and /ping/.

Requests pick their organization with the X-Organization header (slug or
name). With --watch-config, edits to the log level in the config file take
effect without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (overrides config)")
	serveCmd.Flags().BoolVar(&watchConfig, "watch-config", false, "Reload log level when the config file changes")
}

// loadServerConfig reads --config and applies serve flag overrides.
func loadServerConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveDB != "" {
		cfg.Database.Path = serveDB
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}

	logCfg := logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		Categories: cfg.Logging.Categories,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	st, err := store.Open(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()
	logging.Boot("Database %s (%s) at schema v%d", cfg.Database.Path, cfg.Database.Driver, st.Migration().ToVersion)

	srv, err := server.New(cfg, st)
	if err != nil {
		return err
	}

	ctx, stop := commandContext()
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return srv.Run(ctx) })
	if watchConfig && verbose {
		logging.BootWarn("--verbose pins the log level; config reloads will not change it")
	}
	if watchConfig {
		g.Go(func() error {
			return config.Watch(ctx, configPath, func(c *config.Config) {
				if verbose {
					return
				}
				if err := logging.SetLevel(c.Logging.Level); err != nil {
					logging.Get(logging.CategoryConfig).Warn("Ignoring log level %q: %v", c.Logging.Level, err)
					return
				}
				logging.ConfigInfo("Log level set to %s", c.Logging.Level)
			})
		})
	}

	return g.Wait()
}
