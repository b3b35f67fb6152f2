package bank

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/demobank/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func record(accountType model.AccountType, n int64, balance string) model.AccountRecord {
	b := dec(balance)
	return model.AccountRecord{Type: accountType, Balance: &b, AccountNumber: &n}
}

func accountWithNumber(reg *Registry, accountType model.AccountType, n int64, balance string) *Account {
	return RestoreAccount(reg, record(accountType, n, balance))
}
