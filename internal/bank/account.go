package bank

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/demobank/internal/acctnum"
	"github.com/cleared-dev/demobank/internal/model"
)

// Account holds a balance and its transaction history. The balance only
// changes through Account methods. An Account is not safe for concurrent use.
type Account struct {
	accountType  model.AccountType
	balance      decimal.Decimal
	transactions []model.Transaction
	number       int64
}

// NewAccount creates an empty account with a freshly generated number.
func NewAccount(reg *Registry, accountType model.AccountType) *Account {
	return &Account{
		accountType: accountType,
		number:      reg.Generate(),
	}
}

// RestoreAccount rebuilds an account from persisted fields. A stored number is
// kept and registered; a missing one is generated. Missing balance means zero
// and missing transactions mean an empty history.
func RestoreAccount(reg *Registry, rec model.AccountRecord) *Account {
	a := &Account{accountType: rec.Type}
	if rec.Balance != nil {
		a.balance = *rec.Balance
	}
	if len(rec.Transactions) > 0 {
		a.transactions = append([]model.Transaction(nil), rec.Transactions...)
	}
	if rec.AccountNumber != nil {
		a.number = *rec.AccountNumber
		reg.Register(a.number)
	} else {
		a.number = reg.Generate()
	}
	return a
}

// Number returns the account number.
func (a *Account) Number() int64 { return a.number }

// Type returns the account category.
func (a *Account) Type() model.AccountType { return a.accountType }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// Transactions returns a copy of the history, oldest first.
func (a *Account) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// FormattedNumber renders the number in hyphenated groups of four.
func (a *Account) FormattedNumber() string {
	return acctnum.Format(a.number)
}

// Label identifies the account in own-account transfer records: "<type> - <number>".
func (a *Account) Label() string {
	return string(a.accountType) + " - " + strconv.FormatInt(a.number, 10)
}

// Deposit adds amount to the balance and records it. The amount is not
// validated; callers reject non-positive input.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
	a.record(model.Transaction{Kind: model.KindDeposit, Amount: amount})
}

// Withdraw subtracts amount from the balance and records it. It fails with
// ErrInsufficientFunds, leaving the account untouched, when amount exceeds
// the balance.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	a.record(model.Transaction{Kind: model.KindWithdraw, Amount: amount})
	return nil
}

// ApplyInterest credits balance × rate, rounded to cents, to a savings account
// and returns the credited amount.
func (a *Account) ApplyInterest(rate decimal.Decimal) (decimal.Decimal, error) {
	if a.accountType != model.AccountTypeSavings {
		return decimal.Zero, ErrNotSavings
	}
	interest := a.balance.Mul(rate).Round(2)
	if !interest.IsPositive() {
		return decimal.Zero, ErrNoInterest
	}
	a.balance = a.balance.Add(interest)
	a.record(model.Transaction{Kind: model.KindInterest, Amount: interest})
	return interest, nil
}

// RemoveTransaction deletes the history record at index i. The balance is
// not adjusted.
func (a *Account) RemoveTransaction(i int) (model.Transaction, error) {
	if i < 0 || i >= len(a.transactions) {
		return model.Transaction{}, fmt.Errorf("%w: %d", ErrTransactionIndex, i)
	}
	removed := a.transactions[i]
	a.transactions = append(a.transactions[:i], a.transactions[i+1:]...)
	return removed, nil
}

// Record returns the persisted shape of the account.
func (a *Account) Record() model.AccountRecord {
	balance := a.balance
	number := a.number
	return model.AccountRecord{
		Type:          a.accountType,
		Balance:       &balance,
		Transactions:  a.Transactions(),
		AccountNumber: &number,
	}
}

// transferOut and transferIn are the two legs of an own-account move. The
// caller has already checked the balance.
func (a *Account) transferOut(amount decimal.Decimal, to *Account, at time.Time) {
	a.balance = a.balance.Sub(amount)
	a.transactions = append(a.transactions, model.Transaction{
		Kind:      model.KindTransferOut,
		Amount:    amount.Neg(),
		Date:      at,
		ToAccount: to.Label(),
	})
}

func (a *Account) transferIn(amount decimal.Decimal, from *Account, at time.Time) {
	a.balance = a.balance.Add(amount)
	a.transactions = append(a.transactions, model.Transaction{
		Kind:        model.KindTransferIn,
		Amount:      amount,
		Date:        at,
		FromAccount: from.Label(),
	})
}

func (a *Account) record(tx model.Transaction) {
	tx.Date = time.Now()
	a.transactions = append(a.transactions, tx)
}
