package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry is one completed transfer in the bank-wide ledger.
// From and To hold formatted account numbers ("1234-5678-90").
type LedgerEntry struct {
	Ref    uuid.UUID
	From   string
	To     string
	Amount decimal.Decimal
	Date   time.Time
}

// ReceiptType distinguishes the two sides of a transfer notification.
type ReceiptType string

const (
	ReceiptSent     ReceiptType = "Sent"
	ReceiptReceived ReceiptType = "Received"
)

// Receipt is a per-user transfer notification. Exactly one of To/From is set:
// To for a Sent receipt, From for a Received one. Both hold user names.
type Receipt struct {
	Ref    uuid.UUID
	Type   ReceiptType
	To     string
	From   string
	Amount decimal.Decimal
	Date   time.Time
}

// Counterparty returns the other user named on the receipt.
func (r Receipt) Counterparty() string {
	if r.To != "" {
		return r.To
	}
	return r.From
}
