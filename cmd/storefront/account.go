package main

import (
	"fmt"

	"storefront-client/internal/user"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newLoginCmd(c *cli) *cobra.Command {
	var in user.LoginInput
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := c.app.users.Login(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Logged in as %s.\n", u.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var in user.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := c.app.users.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Welcome, %s.\n", u.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	return cmd
}

func newGoogleLoginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login-google <credential>",
		Short: "Log in with a Google identity credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := c.app.users.GoogleLogin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Logged in as %s.\n", u.DisplayName())
			return nil
		},
	}
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session and the last order; carts are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			err := multierr.Combine(
				c.app.users.Logout(ctx),
				c.app.orders.ClearLast(ctx),
			)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := c.app.users.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			printUser(c.out, u)
			return nil
		},
	}
}

func newProfileCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the account profile",
	}

	var firstName, lastName, phone, avatar string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; only the flags given are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in user.UpdateProfileInput
			flags := cmd.Flags()
			if flags.Changed("first-name") {
				in.FirstName = &firstName
			}
			if flags.Changed("last-name") {
				in.LastName = &lastName
			}
			if flags.Changed("phone") {
				in.Phone = &phone
			}
			if flags.Changed("avatar-url") {
				in.AvatarURL = &avatar
			}

			u, err := c.app.users.UpdateProfile(cmd.Context(), in)
			if err != nil {
				return err
			}
			printUser(c.out, u)
			return nil
		},
	}
	update.Flags().StringVar(&firstName, "first-name", "", "first name")
	update.Flags().StringVar(&lastName, "last-name", "", "last name")
	update.Flags().StringVar(&phone, "phone", "", "phone number")
	update.Flags().StringVar(&avatar, "avatar-url", "", "avatar image URL")

	cmd.AddCommand(update)
	return cmd
}

func newPasswordCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Reset a forgotten password",
	}

	reset := &cobra.Command{
		Use:   "reset <email>",
		Short: "Email a password reset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.users.RequestPasswordReset(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "If the account exists, a reset link is on its way.")
			return nil
		},
	}

	var in user.PasswordResetConfirm
	confirm := &cobra.Command{
		Use:   "confirm",
		Short: "Set a new password from a reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.users.ConfirmPasswordReset(cmd.Context(), in); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Password updated. You can log in now.")
			return nil
		},
	}
	confirm.Flags().StringVar(&in.UID, "uid", "", "uid from the reset link")
	confirm.Flags().StringVar(&in.Token, "token", "", "token from the reset link")
	confirm.Flags().StringVar(&in.NewPassword, "new-password", "", "new password")

	cmd.AddCommand(reset, confirm)
	return cmd
}
