package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCommand(opts *rootOptions) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Register, log in and out",
	}
	userCmd.AddCommand(newUserRegisterCommand(opts))
	userCmd.AddCommand(newUserLoginCommand(opts))
	userCmd.AddCommand(newUserLogoutCommand(opts))
	userCmd.AddCommand(newUserWhoamiCommand(opts))
	return userCmd
}

func newUserRegisterCommand(opts *rootOptions) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "register <name>",
		Short: "Create a user and log in as them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pin == "" {
				return errors.New("--pin is required")
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			u, err := a.store.CreateUser(cmd.Context(), args[0], pin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s and logged in\n", u.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "PIN for logins and transfers (required)")

	return cmd
}

func newUserLoginCommand(opts *rootOptions) *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "login <name>",
		Short: "Log in as an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			ok, err := a.store.Login(cmd.Context(), args[0], pin)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("invalid name or PIN")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "PIN")

	return cmd
}

func newUserLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newUserWhoamiCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			u, err := a.store.SessionUser(cmd.Context())
			if err != nil {
				return err
			}
			if u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d accounts)\n", u.Name(), len(u.Accounts()))
			return nil
		},
	}
}
