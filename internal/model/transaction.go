package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Stored balances and amounts are JSON numbers, as in existing demo data.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionKind names the mutation that produced a transaction record.
type TransactionKind string

const (
	KindDeposit     TransactionKind = "deposit"
	KindWithdraw    TransactionKind = "withdraw"
	KindInterest    TransactionKind = "interest"
	KindTransferOut TransactionKind = "transfer out"
	KindTransferIn  TransactionKind = "transfer in"
)

// Transaction is one entry in an account's history.
//
// Sign convention depends on the kind: deposit, withdraw and interest store the
// unsigned amount; transfer out is negative and transfer in is positive.
// Older data may carry signed withdraw amounts too.
type Transaction struct {
	Kind        TransactionKind
	Amount      decimal.Decimal
	Date        time.Time
	ToAccount   string
	FromAccount string

	// DateText keeps a stored date that matched no known layout. Date is
	// zero when it is set, and it is written back unchanged.
	DateText string
}

// localeLayouts are the en-US Date.toLocaleString forms found in stored data.
var localeLayouts = []string{
	"1/2/2006, 3:04:05 PM",
	"1/2/2006, 15:04:05",
}

type transactionJSON struct {
	Kind        TransactionKind `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        json.RawMessage `json:"date,omitempty"`
	ToAccount   string          `json:"toAccount,omitempty"`
	FromAccount string          `json:"fromAccount,omitempty"`
}

// MarshalJSON writes the date as RFC 3339, or DateText when the stored date
// could not be parsed.
func (t Transaction) MarshalJSON() ([]byte, error) {
	out := transactionJSON{
		Kind:        t.Kind,
		Amount:      t.Amount,
		ToAccount:   t.ToAccount,
		FromAccount: t.FromAccount,
	}
	var err error
	switch {
	case t.Date.IsZero() && t.DateText != "":
		out.Date, err = json.Marshal(t.DateText)
	case !t.Date.IsZero():
		out.Date, err = json.Marshal(t.Date.Format(time.RFC3339Nano))
	}
	if err != nil {
		return nil, fmt.Errorf("encoding date: %w", err)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts RFC 3339 dates, locale-formatted dates and epoch
// milliseconds. Any other date string is kept in DateText rather than failing
// the record.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var in transactionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*t = Transaction{
		Kind:        in.Kind,
		Amount:      in.Amount,
		ToAccount:   in.ToAccount,
		FromAccount: in.FromAccount,
	}

	raw := bytes.TrimSpace(in.Date)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] != '"' {
		var ms int64
		if err := json.Unmarshal(raw, &ms); err != nil {
			t.DateText = string(raw)
			return nil
		}
		t.Date = time.UnixMilli(ms)
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}
	t.Date, t.DateText = ParseDate(s)
	return nil
}

// ParseDate parses a stored date. When no layout matches it returns the zero
// time and the input unchanged.
func ParseDate(s string) (time.Time, string) {
	if d, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return d, ""
	}
	for _, layout := range localeLayouts {
		if d, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return d, ""
		}
	}
	return time.Time{}, s
}

// IsDebit reports whether the record should be rendered as money leaving the account.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative() || t.Kind == KindWithdraw
}
