package bank

import "errors"

var (
	// ErrAccountNotFound means an account number did not resolve to any known account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidPIN means the PIN did not match the source account owner's PIN.
	ErrInvalidPIN = errors.New("invalid PIN")

	// ErrInsufficientFunds means a withdrawal or transfer exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount means the amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than 0")

	// ErrSameAccount means source and destination are the same account.
	ErrSameAccount = errors.New("source and destination are the same account")

	// ErrNotSavings means interest was requested on a non-savings account.
	ErrNotSavings = errors.New("interest applies to savings accounts only")

	// ErrNoInterest means the computed interest is not positive.
	ErrNoInterest = errors.New("no interest to apply")

	// ErrAccountIndex means an account position is out of range.
	ErrAccountIndex = errors.New("no account at that position")

	// ErrTransactionIndex means a transaction position is out of range.
	ErrTransactionIndex = errors.New("no transaction at that position")
)
