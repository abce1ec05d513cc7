package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/paymentsengine/internal/domain"
)

// Column names of the transaction feed.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// DecodeError reports a row that could not be turned into a transaction.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Source decodes a CSV transaction feed with a header row. Fields are
// trimmed and rows may omit trailing columns.
type Source struct {
	r      io.Reader
	closer io.Closer
}

// NewSource creates a Source reading from r.
func NewSource(r io.Reader) *Source {
	return &Source{r: r}
}

// OpenSource opens the file at path.
func OpenSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return &Source{r: f, closer: f}, nil
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Stream implements usecase.TransactionSource. The first undecodable row
// aborts the stream.
func (s *Source) Stream(ctx context.Context, feed chan<- domain.Transaction) error {
	reader := csv.NewReader(s.r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return decodeErr(err, 1)
	}

	cols, err := newColumns(header)
	if err != nil {
		return &DecodeError{Line: 1, Err: err}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return decodeErr(err, 0)
		}
		line, _ := reader.FieldPos(0)

		tx, err := cols.decode(record)
		if err != nil {
			return &DecodeError{Line: line, Err: err}
		}

		select {
		case feed <- tx:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type columns struct {
	kind, client, tx, amount int
}

func newColumns(header []string) (columns, error) {
	cols := columns{kind: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnType:
			cols.kind = i
		case ColumnClient:
			cols.client = i
		case ColumnTx:
			cols.tx = i
		case ColumnAmount:
			cols.amount = i
		}
	}

	for name, idx := range map[string]int{ColumnType: cols.kind, ColumnClient: cols.client, ColumnTx: cols.tx} {
		if idx < 0 {
			return cols, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}

	return cols, nil
}

func (c columns) decode(record []string) (domain.Transaction, error) {
	kind, ok := field(record, c.kind)
	if !ok || kind == "" {
		return domain.Transaction{}, fmt.Errorf("%w %q", ErrMissingColumn, ColumnType)
	}

	rawClient, _ := field(record, c.client)
	client, err := strconv.ParseUint(rawClient, 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid client %q: %w", rawClient, err)
	}

	rawTx, _ := field(record, c.tx)
	tx, err := strconv.ParseUint(rawTx, 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid tx %q: %w", rawTx, err)
	}

	out := domain.Transaction{
		Kind:   domain.Kind(kind),
		Client: domain.ClientID(client),
		Tx:     domain.TxID(tx),
	}

	if rawAmount, ok := field(record, c.amount); ok && rawAmount != "" {
		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid amount %q: %w", rawAmount, err)
		}
		out.Amount = decimal.NewNullDecimal(amount)
	}

	return out, nil
}

// field returns the trimmed value at idx, or false when the row is too short.
func field(record []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[idx]), true
}

func decodeErr(err error, line int) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		line = parseErr.StartLine
	}
	return &DecodeError{Line: line, Err: err}
}
