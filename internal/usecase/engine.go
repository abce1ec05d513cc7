package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iho/paymentsengine/internal/domain"
	"github.com/iho/paymentsengine/internal/infrastructure/metrics"
)

// EngineConfig holds the dependencies of an Engine.
type EngineConfig struct {
	Source        TransactionSource
	Report        ReportWriter
	IDGen         IDGenerator
	Logger        zerolog.Logger
	Metrics       *metrics.Metrics
	QueueCapacity int
}

// Engine couples ingest, dispatch and reporting for a single run.
type Engine struct {
	source        TransactionSource
	report        ReportWriter
	dispatcher    *Dispatcher
	logger        zerolog.Logger
	metrics       *metrics.Metrics
	queueCapacity int
	runID         string
}

// RunSummary describes a completed run.
type RunSummary struct {
	RunID    string
	Stats    Stats
	Duration time.Duration
}

// NewEngine creates an Engine. Every log line of the run carries its run id.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = DefaultQueueCapacity
	}

	runID := cfg.IDGen.Generate()
	logger := cfg.Logger.With().Str("run_id", runID).Logger()

	return &Engine{
		source:        cfg.Source,
		report:        cfg.Report,
		dispatcher:    NewDispatcher(logger, cfg.Metrics),
		logger:        logger,
		metrics:       cfg.Metrics,
		queueCapacity: cfg.QueueCapacity,
		runID:         runID,
	}
}

// RunID returns the id attached to this run.
func (e *Engine) RunID() string {
	return e.runID
}

// Stats reports dispatcher progress. Safe to call while Run is active.
func (e *Engine) Stats() Stats {
	return e.dispatcher.Stats()
}

// Run streams the source through the dispatcher and, once the feed is
// drained, writes the report. Ingest and dispatch run concurrently over a
// bounded queue; whichever fails first cancels the other and both are joined
// before Run returns. Nothing is reported for a failed run.
func (e *Engine) Run(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	e.logger.Info().Int("queue_capacity", e.queueCapacity).Msg("run started")

	feed := make(chan domain.Transaction, e.queueCapacity)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(feed)
		if err := e.source.Stream(gctx, feed); err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := e.dispatcher.Run(gctx, feed); err != nil {
			return fmt.Errorf("dispatch: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		e.logger.Error().Err(err).Int64("processed", e.dispatcher.Stats().Processed).Msg("run aborted")
		return nil, err
	}

	if err := e.report.WriteReport(e.dispatcher.Snapshot()); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	summary := &RunSummary{
		RunID:    e.runID,
		Stats:    e.dispatcher.Stats(),
		Duration: time.Since(start),
	}

	if e.metrics != nil {
		e.metrics.RunDuration.Observe(summary.Duration.Seconds())
	}

	e.logger.Info().
		Int64("processed", summary.Stats.Processed).
		Int64("applied", summary.Stats.Applied).
		Int64("ignored", summary.Stats.Ignored).
		Int64("accounts", summary.Stats.Accounts).
		Dur("duration", summary.Duration).
		Msg("run completed")

	return summary, nil
}
