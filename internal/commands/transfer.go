package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/demobank/internal/acctnum"
	"github.com/cleared-dev/demobank/internal/bank"
	"github.com/cleared-dev/demobank/internal/ledgerlog"
	"github.com/cleared-dev/demobank/internal/model"
)

func newMoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from-index> <to-index> <amount>",
		Short: "Move money between two of your own accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			return withSessionUser(cmd, opts, func(_ *app, u *bank.User) error {
				if err := u.MoveBetween(from, to, amount); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %s from account %d to account %d\n", money(amount), from, to)
				return nil
			})
		},
	}
}

func newTransferCommand(opts *rootOptions) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "transfer <from-number> <to-number> <amount>",
		Short: "Transfer to any account, authorized by the source owner's PIN",
		Long: "Transfer to any account, authorized by the source owner's PIN.\n" +
			"Account numbers may be given with or without hyphens (1234-5678-90).",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := acctnum.Parse(args[0])
			if err != nil {
				return err
			}
			to, err := acctnum.Parse(args[1])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			return runTransfer(cmd, opts, from, to, amount, pin)
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "PIN of the source account's owner")

	return cmd
}

// runTransfer refuses zero amounts and self-transfers, which the bank would
// otherwise record as no-op transfers.
func runTransfer(cmd *cobra.Command, opts *rootOptions, from, to int64, amount decimal.Decimal, pin string) error {
	if err := bank.ValidateAmount(amount); err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}
	if from == to {
		return fmt.Errorf("transfer failed: %w", bank.ErrSameAccount)
	}

	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	users, err := a.store.ListUsers(ctx)
	if err != nil {
		return err
	}
	bk := bank.NewBank(&a.log)
	for _, u := range users {
		bk.AddUser(u)
	}

	entry, err := bk.TransferFunds(from, to, amount, pin)
	if err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}
	if err := a.store.SaveAll(ctx, users); err != nil {
		return err
	}
	if err := ledgerlog.Append(a.dataDir, []model.LedgerEntry{entry}); err != nil {
		a.log.Warn().Err(err).Str("ref", entry.Ref.String()).Msg("Failed to write ledger journal")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Transferred %s from %s to %s\n", money(entry.Amount), entry.From, entry.To)
	_, sender := bk.FindAccount(from)
	receipts := sender.Receipts()
	r := receipts[len(receipts)-1]
	fmt.Fprintf(out, "Receipt %s: %s %s to %s\n", r.Ref, r.Type, money(r.Amount), r.Counterparty())
	return nil
}

func newLedgerCommand(opts *rootOptions) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Print every completed transfer, oldest first",
		Long: "Print every completed transfer, oldest first.\n" +
			"--ref looks up the transfer behind a receipt.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			var entries []model.LedgerEntry
			if ref != "" {
				id, err := uuid.Parse(ref)
				if err != nil {
					return fmt.Errorf("invalid receipt ref %q", ref)
				}
				e, err := ledgerlog.Find(cfg.Storage.Dir, id)
				if err != nil {
					return err
				}
				if e == nil {
					return fmt.Errorf("no transfer with ref %s", id)
				}
				entries = append(entries, *e)
			} else {
				entries, err = ledgerlog.Read(cfg.Storage.Dir)
				if err != nil {
					return err
				}
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transfers")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tFROM\tTO\tAMOUNT\tREF")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", formatTime(e.Date), e.From, e.To, money(e.Amount), e.Ref)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "receipt ref to look up")

	return cmd
}
