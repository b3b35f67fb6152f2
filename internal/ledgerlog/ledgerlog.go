// Package ledgerlog journals completed PIN-authorized transfers to
// <data>/ledger.csv. Receipts are never persisted, so a row's ref is the only
// durable link between a printed Sent/Received receipt and the transfer that
// produced it. Rows are only ever appended; a rejected transfer never reaches
// the journal.
package ledgerlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/demobank/internal/model"
)

// Header names the journal columns. from_account and to_account hold
// hyphenated account numbers (1234-5678-90), not user names.
const Header = "timestamp,ref,from_account,to_account,amount"

// FileName is the journal's name inside the data directory.
const FileName = "ledger.csv"

const (
	numFields = 5
	colTime   = 0
	colRef    = 1
	colFrom   = 2
	colTo     = 3
	colAmount = 4
)

// MarshalEntry converts a transfer to a journal row. The amount keeps the
// precision it was transferred with.
func MarshalEntry(e model.LedgerEntry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Date.UTC().Format(time.RFC3339Nano)
	row[colRef] = e.Ref.String()
	row[colFrom] = e.From
	row[colTo] = e.To
	row[colAmount] = e.Amount.String()
	return row
}

// UnmarshalEntry parses a journal row. A row whose ref is not a UUID did
// not come from a transfer and is an error.
func UnmarshalEntry(record []string) (model.LedgerEntry, error) {
	if len(record) != numFields {
		return model.LedgerEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339Nano, record[colTime])
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	ref, err := uuid.Parse(record[colRef])
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parsing ref %q: %w", record[colRef], err)
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.LedgerEntry{
		Ref:    ref,
		From:   record[colFrom],
		To:     record[colTo],
		Amount: amount,
		Date:   ts,
	}, nil
}

// Append journals completed transfers after the user set holding their
// balance changes has been saved. The file and header are created on the
// first transfer.
func Append(dataDir string, entries []model.LedgerEntry) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns every journaled transfer, oldest first, or nil when no
// transfer has completed yet.
func Read(dataDir string) ([]model.LedgerEntry, error) {
	f, err := os.Open(filepath.Join(dataDir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// Find returns the transfer a receipt ref points at, or nil when the journal
// has no such transfer.
func Find(dataDir string, ref uuid.UUID) (*model.LedgerEntry, error) {
	entries, err := Read(dataDir)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Ref == ref {
			return &entries[i], nil
		}
	}
	return nil, nil
}

func readEntries(r io.Reader) ([]model.LedgerEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []model.LedgerEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
