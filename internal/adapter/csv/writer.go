package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/paymentsengine/internal/domain"
)

// ReportPrecision is the number of fractional digits in reported amounts.
const ReportPrecision = 4

var reportHeader = []string{"client", "available", "held", "total", "locked"}

// ReportWriter renders account snapshots as CSV.
type ReportWriter struct {
	w io.Writer
}

// NewReportWriter creates a ReportWriter writing to w.
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{w: w}
}

// WriteReport implements usecase.ReportWriter. Amounts are rounded half away
// from zero to ReportPrecision places at this point only.
func (r *ReportWriter) WriteReport(accounts []domain.AccountSnapshot) error {
	writer := csv.NewWriter(r.w)

	if err := writer.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, account := range accounts {
		row := []string{
			strconv.FormatUint(uint64(account.Client), 10),
			account.Available.StringFixed(ReportPrecision),
			account.Held.StringFixed(ReportPrecision),
			account.Available.Add(account.Held).StringFixed(ReportPrecision),
			strconv.FormatBool(account.Locked),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write client %d: %w", account.Client, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
