package domain

import (
	"errors"
	"fmt"
)

var (
	// Malformed record errors
	ErrMissingAmount  = errors.New("amount is required")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// InvalidKindError reports a transaction type outside the known set.
type InvalidKindError struct {
	Raw string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("transaction has invalid type %q", e.Raw)
}
