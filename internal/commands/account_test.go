package commands_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/demobank/internal/model"
)

func TestAccount_DepositWithdraw(t *testing.T) {
	c := newCLI(t)
	c.must("user", "register", "alice", "--pin", "1234")

	out := c.must("account", "add", "checking")
	assert.Contains(t, out, "Opened checking account")

	c.must("account", "deposit", "0", "100")
	out = c.must("account", "withdraw", "0", "30")
	assert.Contains(t, out, "balance $70.00")
	assert.Equal(t, "$70.00\n", c.must("account", "balance", "0"))

	_, err := c.run("account", "withdraw", "0", "500")
	assert.ErrorContains(t, err, "insufficient funds")
	_, err = c.run("account", "deposit", "0", "-5")
	assert.ErrorContains(t, err, "amount must be greater than 0")
	_, err = c.run("account", "deposit", "0", "lots")
	assert.ErrorContains(t, err, "invalid amount")
	_, err = c.run("account", "deposit", "3", "5")
	assert.ErrorContains(t, err, "no account at that position")

	u := c.user("alice")
	require.Len(t, u.Accounts(), 1)
	acct := u.Accounts()[0]
	assert.Equal(t, "70", acct.Balance().String())
	assert.Len(t, acct.Transactions(), 2)
}

func TestAccount_List(t *testing.T) {
	c := newCLI(t)
	c.must("user", "register", "alice", "--pin", "1234")
	assert.Contains(t, c.must("account", "list"), "No accounts")

	c.must("account", "add", "checking")
	c.must("account", "add", "savings")
	c.must("account", "deposit", "1", "12.5")

	out := c.must("account", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "BALANCE")
	assert.Contains(t, lines[1], "checking")
	assert.Contains(t, lines[2], "savings")
	assert.Contains(t, lines[2], "$12.50")
	assert.Contains(t, lines[2], c.user("alice").Accounts()[1].FormattedNumber())
}

func TestAccount_Interest(t *testing.T) {
	c := newCLI(t)
	c.must("user", "register", "alice", "--pin", "1234")
	c.must("account", "add", "checking")
	c.must("account", "add", "savings")
	c.must("account", "deposit", "0", "200")
	c.must("account", "deposit", "1", "200")

	out := c.must("account", "interest", "1")
	assert.Contains(t, out, "Credited $4.00 interest, balance $204.00")

	_, err := c.run("account", "interest", "0")
	assert.ErrorContains(t, err, "savings accounts only")
}

func TestAccount_Close(t *testing.T) {
	c := newCLI(t)
	c.must("user", "register", "alice", "--pin", "1234")
	c.must("account", "add", "checking")
	c.must("account", "add", "savings")

	c.must("account", "close", "0")

	accounts := c.user("alice").Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, model.AccountTypeSavings, accounts[0].Type())
}

func TestAccount_History(t *testing.T) {
	c := newCLI(t)
	c.must("user", "register", "alice", "--pin", "1234")
	c.must("account", "add", "checking")
	assert.Contains(t, c.must("account", "history", "0"), "No transactions")

	c.must("account", "deposit", "0", "100")
	c.must("account", "withdraw", "0", "25")

	out := c.must("account", "history", "0")
	assert.Contains(t, out, "+$100.00")
	assert.Contains(t, out, "-$25.00")

	out = c.must("account", "history", "0", "--csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,type,amount,to_account,from_account", lines[0])
	assert.Contains(t, lines[1], ",deposit,100,")
	assert.Contains(t, lines[2], ",withdraw,25,")
}

func TestAccount_DeleteTx(t *testing.T) {
	c := newCLI(t)
	c.must("user", "register", "alice", "--pin", "1234")
	c.must("account", "add", "checking")
	c.must("account", "deposit", "0", "10")
	c.must("account", "deposit", "0", "20")

	out := c.must("account", "delete-tx", "0", "0")
	assert.Contains(t, out, "Removed deposit +$10.00")

	acct := c.user("alice").Accounts()[0]
	require.Len(t, acct.Transactions(), 1)
	assert.Equal(t, "20", acct.Transactions()[0].Amount.String())
	assert.Equal(t, "30", acct.Balance().String(), "balance is untouched")

	_, err := c.run("account", "delete-tx", "0", "9")
	assert.ErrorContains(t, err, "no transaction at that position")
}
