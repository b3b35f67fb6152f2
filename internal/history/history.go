// Package history exports an account's transaction history as CSV.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/cleared-dev/demobank/internal/model"
)

const (
	numFields = 5
	colDate   = 0
	colKind   = 1
	colAmount = 2
	colTo     = 3
	colFrom   = 4
)

var header = []string{"date", "type", "amount", "to_account", "from_account"}

// Write writes transactions as CSV with a header row. Amounts keep their
// stored sign and precision.
func Write(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row. A date that was
// stored in an unrecognized form is written as it was stored.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	if tx.Date.IsZero() && tx.DateText != "" {
		row[colDate] = tx.DateText
	} else {
		row[colDate] = tx.Date.UTC().Format(time.RFC3339Nano)
	}
	row[colKind] = string(tx.Kind)
	row[colAmount] = tx.Amount.String()
	row[colTo] = tx.ToAccount
	row[colFrom] = tx.FromAccount
	return row
}
