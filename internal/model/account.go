package model

import "github.com/shopspring/decimal"

// AccountType categorizes an account. Any string is accepted; savings enables interest.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// AccountRecord is the persisted shape of an account.
// Pointer fields may be absent in stored data and are defaulted on reconstruction.
type AccountRecord struct {
	Type          AccountType      `json:"type"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	Transactions  []Transaction    `json:"transactions"`
	AccountNumber *int64           `json:"accountNumber,omitempty"`
}
