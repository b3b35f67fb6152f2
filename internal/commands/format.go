package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/demobank/internal/model"
)

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return i, nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// signedMoney prefixes debits with "-" and credits with "+".
func signedMoney(tx model.Transaction) string {
	if tx.IsDebit() {
		return "-" + money(tx.Amount.Abs())
	}
	return "+" + money(tx.Amount)
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatTxDate(tx model.Transaction) string {
	if tx.Date.IsZero() && tx.DateText != "" {
		return tx.DateText
	}
	return formatTime(tx.Date)
}
