package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"zeedzad/web/pkg/api"
	"zeedzad/web/pkg/cli"
	"zeedzad/web/pkg/config"
	"zeedzad/web/pkg/gateway"
	"zeedzad/web/pkg/server"
	"zeedzad/web/pkg/telemetry/health"
	"zeedzad/web/pkg/telemetry/metrics"
	"zeedzad/web/pkg/telemetry/tracing"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runFlags struct {
	listenAddress string
	backendURL    string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the /api gateway",
	Long: `Start the gateway with the specified configuration.

Every request under /api/ is forwarded to the backend unchanged. The backend
URL follows the configuration file, which is watched and reloaded on change.

Examples:
  # Start with default config
  zeedzad run

  # Start with custom config
  zeedzad run --config /etc/zeedzad/config.yaml

  # Override listen address and backend
  zeedzad run --listen 0.0.0.0:3000 --backend http://api:8088

  # Validate config without starting the gateway
  zeedzad run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.backendURL, "backend", "", "override backend base URL")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the gateway")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	applyRunFlags(cfg)
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("flags", err.Error())
	}

	logger, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	printBanner(cmd, cfg)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	fwd, err := gateway.New(cfg.Gateway.BackendBaseURL,
		gateway.WithMetrics(collector),
		gateway.WithTracer(tracer),
		gateway.WithLogger(logger.With("component", "gateway")),
	)
	if err != nil {
		return cli.NewConfigError("gateway.backend_base_url", err.Error())
	}

	config.OnReload(backendReloader(fwd))

	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
	checker.RegisterCheck("backend", func(ctx context.Context) error {
		// The backend URL can change on reload, so the client is built
		// per probe.
		return api.NewClient(fwd.Backend()+"/api", api.WithTracer(tracer)).Ping(ctx)
	})

	srv := server.NewServer(&cfg.Gateway, fwd,
		server.WithHealthChecker(checker),
		server.WithMetrics(collector, &cfg.Telemetry.Metrics),
		server.WithTracer(tracer),
		server.WithVersion(Version, GitCommit, BuildDate),
	)

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	prober := health.NewProber(checker, "backend", cfg.Telemetry.Health.ProbeSchedule, collector.SetBackendUp)
	if err := prober.Start(gctx); err != nil {
		return cli.NewConfigError("telemetry.health.probe_schedule", err.Error())
	}
	defer prober.Stop()
	if next := prober.NextRun(); next != nil {
		slog.Info("backend probe scheduled", "next", next.Format(time.RFC3339))
	}

	if _, err := os.Stat(cfgFile); err == nil {
		watcher, err := config.NewWatcher(cfgFile, 0, logger)
		if err != nil {
			slog.Warn("config hot reload disabled", "error", err)
		} else {
			g.Go(func() error {
				return watcher.Watch(gctx, func() error {
					if err := config.ReloadConfig(cfgFile); err != nil {
						return err
					}
					slog.Info("gateway backend after reload",
						"backend", config.GetConfig().Gateway.BackendBaseURL,
					)
					return nil
				})
			})
		}
	}

	g.Go(func() error {
		err := srv.Start(gctx)
		// The server also stops on its own signal handling; release the
		// other goroutines either way.
		stop()
		return err
	})

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Gateway listening on %s\n", cfg.Gateway.ListenAddress)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Forwarding /api/* to %s\n", fwd.Backend())
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Metrics endpoint: %s\n", cfg.Telemetry.Metrics.Path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nPress Ctrl+C to stop")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return cli.NewCommandError("run", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Gateway stopped")
	return nil
}

func printBanner(cmd *cobra.Command, cfg *config.Config) {
	fmt.Fprintf(cmd.OutOrStdout(), "zeedzad v%s\n", Version)
	fmt.Fprintf(cmd.OutOrStdout(), "Loading configuration from: %s\n", cfgFile)
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration loaded")

	if cfg.Telemetry.Tracing.Enabled {
		slog.Debug("tracing enabled", "endpoint", cfg.Telemetry.Tracing.Endpoint)
	}
}

// applyRunFlags overrides cfg with the run command flags. It runs on the
// initial load and again on every reload, so a file change never reverts a
// flag.
func applyRunFlags(cfg *config.Config) {
	if runFlags.listenAddress != "" {
		cfg.Gateway.ListenAddress = runFlags.listenAddress
	}
	if runFlags.backendURL != "" {
		cfg.Gateway.BackendBaseURL = runFlags.backendURL
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
}

// backendReloader returns the reload hook that points fwd at the reloaded
// backend URL.
func backendReloader(fwd *gateway.Forwarder) func(*config.Config) {
	return func(c *config.Config) {
		applyRunFlags(c)
		if err := fwd.SetBackend(c.Gateway.BackendBaseURL); err != nil {
			slog.Warn("ignoring reloaded backend URL", "error", err)
		}
	}
}
