package bank

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/demobank/internal/model"
)

// Bank aggregates users for cross-user lookups and PIN-authorized transfers,
// and keeps the bank-wide ledger of completed transfers.
//
// The user set is independent of any persisted store. Transfers are
// serialized by mu; the users' accounts must not be mutated concurrently
// through other paths.
type Bank struct {
	mu     sync.Mutex
	users  []*User
	ledger []model.LedgerEntry
	log    zerolog.Logger
}

// NewBank creates an empty bank.
func NewBank(baseLogger *zerolog.Logger) *Bank {
	return &Bank{
		log: baseLogger.With().Str("component", "bank").Logger(),
	}
}

// AddUser makes u visible to lookups and transfers.
func (b *Bank) AddUser(u *User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users = append(b.users, u)
}

// Users returns the known users in insertion order.
func (b *Bank) Users() []*User {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*User, len(b.users))
	copy(out, b.users)
	return out
}

// FindUser returns the first user with the given name, or nil.
func (b *Bank) FindUser(name string) *User {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.name == name {
			return u
		}
	}
	return nil
}

// FindAccount returns the account with the given number and its owner, or
// nil, nil if no known user owns it.
func (b *Bank) FindAccount(number int64) (*Account, *User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.findAccount(number)
}

func (b *Bank) findAccount(number int64) (*Account, *User) {
	for _, u := range b.users {
		if a := u.AccountByNumber(number); a != nil {
			return a, u
		}
	}
	return nil, nil
}

// Transfer moves amount between two accounts, authorized by the PIN of the
// source account's owner. It reports whether the transfer happened; not
// found, wrong PIN and insufficient funds all yield false.
func (b *Bank) Transfer(fromNumber, toNumber int64, amount decimal.Decimal, pin string) bool {
	_, err := b.TransferFunds(fromNumber, toNumber, amount, pin)
	return err == nil
}

// TransferFunds is Transfer with the failure cause and the ledger entry.
//
// Steps run in a fixed order: resolve both accounts, verify the source
// owner's PIN, debit the source, credit the destination, append the ledger
// entry, then issue Sent/Received receipts. Nothing is mutated before the
// debit succeeds, and the credit cannot fail once it has.
//
// Negative amounts fail with ErrInvalidAmount, since they would pull money
// out of the destination without its owner's PIN. Zero amounts and transfers
// from an account to itself go through; callers that want to refuse them
// check first.
func (b *Bank) TransferFunds(fromNumber, toNumber int64, amount decimal.Decimal, pin string) (model.LedgerEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	log := b.log.With().Int64("from", fromNumber).Int64("to", toNumber).Str("amount", amount.String()).Logger()

	if amount.IsNegative() {
		log.Warn().Err(ErrInvalidAmount).Msg("Transfer rejected")
		return model.LedgerEntry{}, ErrInvalidAmount
	}

	from, sender := b.findAccount(fromNumber)
	to, recipient := b.findAccount(toNumber)
	if from == nil || to == nil {
		log.Warn().Err(ErrAccountNotFound).Msg("Transfer rejected")
		return model.LedgerEntry{}, ErrAccountNotFound
	}
	if !sender.VerifyPIN(pin) {
		log.Warn().Str("user", sender.name).Err(ErrInvalidPIN).Msg("Transfer rejected")
		return model.LedgerEntry{}, ErrInvalidPIN
	}
	if err := from.Withdraw(amount); err != nil {
		log.Warn().Err(err).Msg("Transfer rejected")
		return model.LedgerEntry{}, err
	}
	to.Deposit(amount)

	now := time.Now()
	entry := model.LedgerEntry{
		Ref:    uuid.New(),
		From:   from.FormattedNumber(),
		To:     to.FormattedNumber(),
		Amount: amount,
		Date:   now,
	}
	b.ledger = append(b.ledger, entry)

	sender.AddReceipt(model.Receipt{Ref: entry.Ref, Type: model.ReceiptSent, To: recipient.name, Amount: amount, Date: now})
	recipient.AddReceipt(model.Receipt{Ref: entry.Ref, Type: model.ReceiptReceived, From: sender.name, Amount: amount, Date: now})

	log.Info().Str("ref", entry.Ref.String()).Str("sender", sender.name).Str("recipient", recipient.name).Msg("Transfer completed")
	return entry, nil
}

// Ledger returns a copy of the completed transfers, oldest first.
func (b *Bank) Ledger() []model.LedgerEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.LedgerEntry, len(b.ledger))
	copy(out, b.ledger)
	return out
}
