package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/iho/paymentsengine/internal/domain"
	"github.com/iho/paymentsengine/internal/infrastructure/metrics"
)

// Stats summarizes the work done by a Dispatcher.
type Stats struct {
	Processed int64 `json:"processed"`
	Applied   int64 `json:"applied"`
	Ignored   int64 `json:"ignored"`
	Accounts  int64 `json:"accounts"`
}

// Dispatcher owns every account and is their only mutator. Accounts are
// created on first sight of a client and never exposed for mutation.
//
// Route and Run must be driven by a single goroutine. Stats may be read from
// any goroutine.
type Dispatcher struct {
	accounts map[domain.ClientID]*domain.Account
	logger   zerolog.Logger
	metrics  *metrics.Metrics

	processed atomic.Int64
	applied   atomic.Int64
	ignored   atomic.Int64
	created   atomic.Int64
}

// NewDispatcher creates a Dispatcher with no accounts. m may be nil.
func NewDispatcher(logger zerolog.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		accounts: make(map[domain.ClientID]*domain.Account),
		logger:   logger,
		metrics:  m,
	}
}

// Run consumes feed until it is closed. A malformed transaction ends the run
// with its error; so does ctx being cancelled.
func (d *Dispatcher) Run(ctx context.Context, feed <-chan domain.Transaction) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tx, ok := <-feed:
			if !ok {
				return nil
			}
			if d.metrics != nil {
				d.metrics.TransactionsIngested.Inc()
				d.metrics.QueueDepth.Set(float64(len(feed)))
			}
			if _, err := d.Route(tx); err != nil {
				return err
			}
		}
	}
}

// Route applies tx to the owning account, creating it if needed.
func (d *Dispatcher) Route(tx domain.Transaction) (domain.Outcome, error) {
	account := d.account(tx.Client)

	outcome, err := account.Apply(tx)
	d.processed.Add(1)
	if err != nil {
		if d.metrics != nil {
			d.metrics.TransactionErrors.WithLabelValues(errorType(err)).Inc()
		}
		return outcome, fmt.Errorf("client %d tx %d: %w", tx.Client, tx.Tx, err)
	}

	if outcome.Applied {
		d.applied.Add(1)
		d.recordApplied(tx.Kind)
	} else {
		d.ignored.Add(1)
		if d.metrics != nil {
			d.metrics.TransactionsIgnored.WithLabelValues(string(tx.Kind), string(outcome.Reason)).Inc()
		}
		d.logger.Debug().
			Uint16("client", uint16(tx.Client)).
			Uint32("tx", uint32(tx.Tx)).
			Str("kind", string(tx.Kind)).
			Str("reason", string(outcome.Reason)).
			Msg("transaction ignored")
	}

	return outcome, nil
}

// Snapshot returns the state of every account ordered by client id. It must
// not be called while Run is active.
func (d *Dispatcher) Snapshot() []domain.AccountSnapshot {
	snapshots := make([]domain.AccountSnapshot, 0, len(d.accounts))
	for _, account := range d.accounts {
		snapshots = append(snapshots, account.Snapshot())
	}

	slices.SortFunc(snapshots, func(a, b domain.AccountSnapshot) int {
		return cmp.Compare(a.Client, b.Client)
	})

	return snapshots
}

// Stats returns the current counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Processed: d.processed.Load(),
		Applied:   d.applied.Load(),
		Ignored:   d.ignored.Load(),
		Accounts:  d.created.Load(),
	}
}

func (d *Dispatcher) account(client domain.ClientID) *domain.Account {
	if account, ok := d.accounts[client]; ok {
		return account
	}

	account := domain.NewAccount(client)
	d.accounts[client] = account
	d.created.Add(1)
	if d.metrics != nil {
		d.metrics.AccountsCreated.Inc()
	}

	return account
}

func (d *Dispatcher) recordApplied(kind domain.Kind) {
	if d.metrics == nil {
		return
	}

	d.metrics.TransactionsApplied.WithLabelValues(string(kind)).Inc()
	switch kind {
	case domain.KindDispute:
		d.metrics.OpenDisputes.Inc()
	case domain.KindResolve:
		d.metrics.OpenDisputes.Dec()
	case domain.KindChargeback:
		d.metrics.OpenDisputes.Dec()
		d.metrics.AccountsLocked.Inc()
	}
}

func errorType(err error) string {
	var kindErr *domain.InvalidKindError
	switch {
	case errors.As(err, &kindErr):
		return "invalid_kind"
	case errors.Is(err, domain.ErrMissingAmount):
		return "missing_amount"
	case errors.Is(err, domain.ErrNegativeAmount):
		return "negative_amount"
	default:
		return "unknown"
	}
}
