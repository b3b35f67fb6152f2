package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/demobank/internal/bank"
	"github.com/cleared-dev/demobank/internal/history"
	"github.com/cleared-dev/demobank/internal/model"
)

func newAccountCommand(opts *rootOptions) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the logged-in user's accounts",
		Long:  "Manage the logged-in user's accounts. Accounts are addressed by their index in `account list`.",
	}
	accountCmd.AddCommand(
		newAccountAddCommand(opts),
		newAccountListCommand(opts),
		newAccountCloseCommand(opts),
		newAccountDepositCommand(opts),
		newAccountWithdrawCommand(opts),
		newAccountInterestCommand(opts),
		newAccountBalanceCommand(opts),
		newAccountHistoryCommand(opts),
		newAccountDeleteTxCommand(opts),
	)
	return accountCmd
}

func newAccountAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <type>",
		Short: "Open an account, e.g. checking or savings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessionUser(cmd, opts, func(_ *app, u *bank.User) error {
				acct := u.AddAccount(model.AccountType(args[0]))
				fmt.Fprintf(cmd.OutOrStdout(), "Opened %s account %s\n", acct.Type(), acct.FormattedNumber())
				return nil
			})
		},
	}
}

func newAccountListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viewSessionUser(cmd, opts, func(_ *app, u *bank.User) error {
				accounts := u.Accounts()
				if len(accounts) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No accounts")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "INDEX\tTYPE\tNUMBER\tBALANCE")
				for i, acct := range accounts {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, acct.Type(), acct.FormattedNumber(), money(acct.Balance()))
				}
				return tw.Flush()
			})
		},
	}
}

func newAccountCloseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "close <index>",
		Short: "Close an account, discarding its balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withSessionUser(cmd, opts, func(_ *app, u *bank.User) error {
				acct, err := u.CloseAccount(i)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Closed %s account %s\n", acct.Type(), acct.FormattedNumber())
				return nil
			})
		},
	}
}

func newAccountDepositCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <index> <amount>",
		Short: "Deposit into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if err := bank.ValidateAmount(amount); err != nil {
				return err
			}
			return withSessionUser(cmd, opts, func(_ *app, u *bank.User) error {
				acct, err := u.AccountAt(i)
				if err != nil {
					return err
				}
				acct.Deposit(amount)
				fmt.Fprintf(cmd.OutOrStdout(), "Deposited %s, balance %s\n", money(amount), money(acct.Balance()))
				return nil
			})
		},
	}
}

func newAccountWithdrawCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <index> <amount>",
		Short: "Withdraw from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if err := bank.ValidateAmount(amount); err != nil {
				return err
			}
			return withSessionUser(cmd, opts, func(_ *app, u *bank.User) error {
				acct, err := u.AccountAt(i)
				if err != nil {
					return err
				}
				if err := acct.Withdraw(amount); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Withdrew %s, balance %s\n", money(amount), money(acct.Balance()))
				return nil
			})
		},
	}
}

func newAccountInterestCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interest <index>",
		Short: "Credit interest to a savings account at the configured rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withSessionUser(cmd, opts, func(a *app, u *bank.User) error {
				acct, err := u.AccountAt(i)
				if err != nil {
					return err
				}
				interest, err := acct.ApplyInterest(a.cfg.Interest.Rate())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Credited %s interest, balance %s\n", money(interest), money(acct.Balance()))
				return nil
			})
		},
	}
}

func newAccountBalanceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <index>",
		Short: "Print an account's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return viewSessionUser(cmd, opts, func(_ *app, u *bank.User) error {
				acct, err := u.AccountAt(i)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), money(acct.Balance()))
				return nil
			})
		},
	}
}

func newAccountHistoryCommand(opts *rootOptions) *cobra.Command {
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "history <index>",
		Short: "Print an account's transactions, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return viewSessionUser(cmd, opts, func(_ *app, u *bank.User) error {
				acct, err := u.AccountAt(i)
				if err != nil {
					return err
				}
				txs := acct.Transactions()
				if asCSV {
					return history.Write(cmd.OutOrStdout(), txs)
				}
				if len(txs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No transactions")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "#\tDATE\tTYPE\tAMOUNT\tCOUNTERPARTY")
				for n, tx := range txs {
					counterparty := tx.ToAccount
					if counterparty == "" {
						counterparty = tx.FromAccount
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", n, formatTxDate(tx), tx.Kind, signedMoney(tx), counterparty)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV instead of a table")

	return cmd
}

func newAccountDeleteTxCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-tx <index> <tx-index>",
		Short: "Remove one record from an account's history; the balance is not adjusted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			n, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return withSessionUser(cmd, opts, func(_ *app, u *bank.User) error {
				acct, err := u.AccountAt(i)
				if err != nil {
					return err
				}
				tx, err := acct.RemoveTransaction(n)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", tx.Kind, signedMoney(tx))
				return nil
			})
		},
	}
}
