package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	csvadapter "github.com/iho/paymentsengine/internal/adapter/csv"
	httpAdapter "github.com/iho/paymentsengine/internal/adapter/http"
	"github.com/iho/paymentsengine/internal/adapter/http/handler"
	"github.com/iho/paymentsengine/internal/infrastructure/config"
	"github.com/iho/paymentsengine/internal/infrastructure/idgen"
	"github.com/iho/paymentsengine/internal/infrastructure/logger"
	"github.com/iho/paymentsengine/internal/infrastructure/metrics"
	"github.com/iho/paymentsengine/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments-engine <transactions.csv>",
		Short: "Replay a transaction log and report client balances",
		Long: `Reads deposits, withdrawals, disputes, resolves and chargebacks from a CSV
file, applies them to client accounts in order and writes the final account
states as CSV to stdout. Diagnostics go to stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

func run(ctx context.Context, path string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: stderr,
	})

	source, err := csvadapter.OpenSource(path)
	if err != nil {
		return err
	}
	defer source.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	engine := usecase.NewEngine(usecase.EngineConfig{
		Source:        source,
		Report:        csvadapter.NewReportWriter(stdout),
		IDGen:         idgen.NewULIDGenerator(),
		Logger:        log,
		Metrics:       m,
		QueueCapacity: cfg.QueueCapacity,
	})

	if cfg.MetricsAddr != "" {
		router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
			HealthHandler: handler.NewHealthHandler(engine),
			Gatherer:      reg,
			Registerer:    reg,
			Logger:        log,
		})

		server := httpAdapter.NewServer(cfg.MetricsAddr, router, log)
		if err := server.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := server.Shutdown(cfg.MetricsShutdownTimeout); err != nil {
				log.Warn().Err(err).Msg("metrics server forced to shutdown")
			}
		}()
	}

	if _, err := engine.Run(ctx); err != nil {
		return err
	}

	return nil
}
