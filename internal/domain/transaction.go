package domain

import (
	"github.com/shopspring/decimal"
)

// ClientID identifies an account holder.
type ClientID uint16

// TxID identifies a transaction within a client's history.
type TxID uint32

// Kind is the raw transaction type as it appears in the feed.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// Transaction is a single immutable record of the input feed.
// Amount is only meaningful for deposits and withdrawals.
type Transaction struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount decimal.NullDecimal
}

// NewTransaction builds a transaction carrying an amount.
func NewTransaction(kind Kind, client ClientID, tx TxID, amount decimal.Decimal) Transaction {
	return Transaction{
		Kind:   kind,
		Client: client,
		Tx:     tx,
		Amount: decimal.NewNullDecimal(amount),
	}
}

// NewReference builds a dispute, resolve or chargeback pointing at tx.
func NewReference(kind Kind, client ClientID, tx TxID) Transaction {
	return Transaction{
		Kind:   kind,
		Client: client,
		Tx:     tx,
	}
}
