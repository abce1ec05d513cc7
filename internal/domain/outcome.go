package domain

// IgnoreReason names the business rule that turned a transaction into a no-op.
type IgnoreReason string

const (
	ReasonAccountLocked        IgnoreReason = "account_locked"
	ReasonInsufficientFunds    IgnoreReason = "insufficient_funds"
	ReasonDuplicateTransaction IgnoreReason = "duplicate_transaction"
	ReasonUnknownTransaction   IgnoreReason = "unknown_transaction"
	ReasonAlreadyDisputed      IgnoreReason = "already_disputed"
	ReasonNotDisputed          IgnoreReason = "not_disputed"
)

// Outcome is the business result of applying a transaction.
// It is kept apart from error: an ignored transaction is a valid result,
// an error means the feed itself is malformed.
type Outcome struct {
	Applied bool
	Reason  IgnoreReason
}

// Applied is the outcome of a transaction that changed account state.
func Applied() Outcome {
	return Outcome{Applied: true}
}

// Ignored is the outcome of a transaction rejected by a business rule.
func Ignored(reason IgnoreReason) Outcome {
	return Outcome{Reason: reason}
}

// String returns "applied" or the ignore reason.
func (o Outcome) String() string {
	if o.Applied {
		return "applied"
	}
	return string(o.Reason)
}
