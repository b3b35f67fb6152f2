package bank

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/demobank/internal/model"
)

// User is an identity with an optional PIN, an ordered list of accounts and
// a log of transfer receipts. Account order is significant: presentation code
// addresses accounts by position.
type User struct {
	name         string
	encryptedPIN *string
	accounts     []*Account
	receipts     []model.Receipt
	numbers      *Registry
}

// NewUser creates a user. An empty pin leaves the user without a PIN, and
// such a user never passes VerifyPIN.
func NewUser(reg *Registry, name, pin string) *User {
	u := &User{name: name, numbers: reg}
	if pin != "" {
		enc := EncodePIN(pin)
		u.encryptedPIN = &enc
	}
	return u
}

// RestoreUser creates a user from an already encoded PIN, without accounts.
func RestoreUser(reg *Registry, name string, encryptedPIN *string) *User {
	u := &User{name: name, numbers: reg}
	if encryptedPIN != nil {
		enc := *encryptedPIN
		u.encryptedPIN = &enc
	}
	return u
}

// Name returns the user's display identity.
func (u *User) Name() string { return u.name }

// EncryptedPIN returns the stored PIN encoding, if any.
func (u *User) EncryptedPIN() (string, bool) {
	if u.encryptedPIN == nil {
		return "", false
	}
	return *u.encryptedPIN, true
}

// Accounts returns the user's accounts in order. The slice is a copy; the
// accounts are shared.
func (u *User) Accounts() []*Account {
	out := make([]*Account, len(u.accounts))
	copy(out, u.accounts)
	return out
}

// AddAccount creates a new account of the given type and attaches it.
func (u *User) AddAccount(accountType model.AccountType) *Account {
	a := NewAccount(u.numbers, accountType)
	u.accounts = append(u.accounts, a)
	return a
}

// AddExistingAccount reconstructs a persisted account, keeping its number.
func (u *User) AddExistingAccount(rec model.AccountRecord) *Account {
	a := RestoreAccount(u.numbers, rec)
	u.accounts = append(u.accounts, a)
	return a
}

// AccountByNumber returns the owned account with the given number, or nil.
func (u *User) AccountByNumber(n int64) *Account {
	for _, a := range u.accounts {
		if a.number == n {
			return a
		}
	}
	return nil
}

// AccountAt returns the account at position i.
func (u *User) AccountAt(i int) (*Account, error) {
	if i < 0 || i >= len(u.accounts) {
		return nil, fmt.Errorf("%w: %d", ErrAccountIndex, i)
	}
	return u.accounts[i], nil
}

// CloseAccount detaches the account at position i. Its remaining balance is
// discarded and its number stays issued.
func (u *User) CloseAccount(i int) (*Account, error) {
	a, err := u.AccountAt(i)
	if err != nil {
		return nil, err
	}
	u.accounts = append(u.accounts[:i], u.accounts[i+1:]...)
	return a, nil
}

// VerifyPIN reports whether candidate is the PIN the user was created with.
func (u *User) VerifyPIN(candidate string) bool {
	if u.encryptedPIN == nil {
		return false
	}
	return *u.encryptedPIN == EncodePIN(candidate)
}

// AddReceipt appends a transfer notification.
func (u *User) AddReceipt(r model.Receipt) {
	u.receipts = append(u.receipts, r)
}

// Receipts returns a copy of the user's receipts, oldest first.
func (u *User) Receipts() []model.Receipt {
	out := make([]model.Receipt, len(u.receipts))
	copy(out, u.receipts)
	return out
}

// MoveBetween transfers amount between two of the user's own accounts,
// addressed by position. No PIN is required. Nothing changes unless every
// check passes.
func (u *User) MoveBetween(fromIndex, toIndex int, amount decimal.Decimal) error {
	from, err := u.AccountAt(fromIndex)
	if err != nil {
		return err
	}
	to, err := u.AccountAt(toIndex)
	if err != nil {
		return err
	}
	if fromIndex == toIndex {
		return ErrSameAccount
	}
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if from.balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	now := time.Now()
	from.transferOut(amount, to, now)
	to.transferIn(amount, from, now)
	return nil
}

// Record returns the persisted shape of the user. Receipts are not included.
func (u *User) Record() model.UserRecord {
	rec := model.UserRecord{
		Name:     u.name,
		Accounts: make([]model.AccountRecord, 0, len(u.accounts)),
	}
	if u.encryptedPIN != nil {
		enc := *u.encryptedPIN
		rec.EncryptedPIN = &enc
	}
	for _, a := range u.accounts {
		rec.Accounts = append(rec.Accounts, a.Record())
	}
	return rec
}

// ValidateAmount rejects zero and negative amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
