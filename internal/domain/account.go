package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account holds a client's balances together with the entries and disputes
// needed to process later references. It is not safe for concurrent use.
type Account struct {
	client    ClientID
	available decimal.Decimal
	held      decimal.Decimal
	locked    bool

	// history maps a deposit or withdrawal to its original amount.
	history  map[TxID]decimal.Decimal
	disputed map[TxID]struct{}
}

// AccountSnapshot is a read-only copy of an account's reportable state.
type AccountSnapshot struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Equal compares two snapshots by value.
func (s AccountSnapshot) Equal(o AccountSnapshot) bool {
	return s.Client == o.Client &&
		s.Available.Equal(o.Available) &&
		s.Held.Equal(o.Held) &&
		s.Total.Equal(o.Total) &&
		s.Locked == o.Locked
}

// NewAccount creates an empty, unlocked account.
func NewAccount(client ClientID) *Account {
	return &Account{
		client:    client,
		available: decimal.Zero,
		held:      decimal.Zero,
		history:   make(map[TxID]decimal.Decimal, 1),
		disputed:  make(map[TxID]struct{}),
	}
}

func (a *Account) Client() ClientID           { return a.client }
func (a *Account) Available() decimal.Decimal { return a.available }
func (a *Account) Held() decimal.Decimal      { return a.held }
func (a *Account) Locked() bool               { return a.locked }

// Total is always derived as available + held.
func (a *Account) Total() decimal.Decimal {
	return a.available.Add(a.held)
}

// Entry returns the recorded amount of a deposit or withdrawal.
func (a *Account) Entry(tx TxID) (decimal.Decimal, bool) {
	amount, ok := a.history[tx]
	return amount, ok
}

// IsDisputed reports whether tx is under an open dispute.
func (a *Account) IsDisputed(tx TxID) bool {
	_, ok := a.disputed[tx]
	return ok
}

// Snapshot copies the reportable state of the account.
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		Client:    a.client,
		Available: a.available,
		Held:      a.held,
		Total:     a.Total(),
		Locked:    a.locked,
	}
}

// Apply runs tx against the account. Business rejections are reported through
// the Outcome; an error is returned only for malformed transactions, and in
// that case the account is left untouched.
func (a *Account) Apply(tx Transaction) (Outcome, error) {
	if a.locked {
		return Ignored(ReasonAccountLocked), nil
	}

	switch tx.Kind {
	case KindDeposit:
		amount, err := requireAmount(tx)
		if err != nil {
			return Outcome{}, err
		}
		return a.deposit(tx.Tx, amount), nil
	case KindWithdrawal:
		amount, err := requireAmount(tx)
		if err != nil {
			return Outcome{}, err
		}
		return a.withdraw(tx.Tx, amount), nil
	case KindDispute:
		return a.dispute(tx.Tx), nil
	case KindResolve:
		return a.resolve(tx.Tx), nil
	case KindChargeback:
		return a.chargeback(tx.Tx), nil
	default:
		return Outcome{}, &InvalidKindError{Raw: string(tx.Kind)}
	}
}

func requireAmount(tx Transaction) (decimal.Decimal, error) {
	if !tx.Amount.Valid {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", tx.Kind, ErrMissingAmount)
	}
	if tx.Amount.Decimal.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", tx.Kind, ErrNegativeAmount)
	}
	return tx.Amount.Decimal, nil
}

func (a *Account) deposit(tx TxID, amount decimal.Decimal) Outcome {
	if _, seen := a.history[tx]; seen {
		return Ignored(ReasonDuplicateTransaction)
	}
	a.available = a.available.Add(amount)
	a.history[tx] = amount
	return Applied()
}

func (a *Account) withdraw(tx TxID, amount decimal.Decimal) Outcome {
	if _, seen := a.history[tx]; seen {
		return Ignored(ReasonDuplicateTransaction)
	}
	remaining := a.available.Sub(amount)
	if remaining.IsNegative() {
		return Ignored(ReasonInsufficientFunds)
	}
	a.available = remaining
	a.history[tx] = amount
	return Applied()
}

// dispute moves the referenced amount from available to held. Withdrawals are
// treated exactly like deposits here.
func (a *Account) dispute(tx TxID) Outcome {
	amount, ok := a.history[tx]
	if !ok {
		return Ignored(ReasonUnknownTransaction)
	}
	if a.IsDisputed(tx) {
		return Ignored(ReasonAlreadyDisputed)
	}
	a.available = a.available.Sub(amount)
	a.held = a.held.Add(amount)
	a.disputed[tx] = struct{}{}
	return Applied()
}

func (a *Account) resolve(tx TxID) Outcome {
	amount, ok := a.openDispute(tx)
	if !ok {
		return Ignored(ReasonNotDisputed)
	}
	a.available = a.available.Add(amount)
	a.held = a.held.Sub(amount)
	delete(a.disputed, tx)
	return Applied()
}

// chargeback drops the held amount for good and freezes the account.
func (a *Account) chargeback(tx TxID) Outcome {
	amount, ok := a.openDispute(tx)
	if !ok {
		return Ignored(ReasonNotDisputed)
	}
	a.held = a.held.Sub(amount)
	delete(a.disputed, tx)
	a.locked = true
	return Applied()
}

func (a *Account) openDispute(tx TxID) (decimal.Decimal, bool) {
	if !a.IsDisputed(tx) {
		return decimal.Decimal{}, false
	}
	amount, ok := a.history[tx]
	return amount, ok
}
