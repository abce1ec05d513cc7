package usecase

import (
	"context"

	"github.com/iho/paymentsengine/internal/domain"
)

// TransactionSource produces the ordered transaction feed.
type TransactionSource interface {
	// Stream sends every transaction to feed in source order and returns once
	// the source is exhausted. It must give up when ctx is done and must not
	// close feed.
	Stream(ctx context.Context, feed chan<- domain.Transaction) error
}

// ReportWriter renders the final account snapshot.
type ReportWriter interface {
	WriteReport(accounts []domain.AccountSnapshot) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
