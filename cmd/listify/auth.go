package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/yukikurage/listify/internal/app"
)

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				resp, err := a.Register(ctx, username, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%s)\n", resp.Message, resp.User.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				resp, err := a.Login(ctx, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%s)\n", resp.Message, resp.User.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	var profile bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				if profile {
					user, err := a.Profile(ctx)
					if errors.Is(err, app.ErrNotLoggedIn) {
						fmt.Fprintln(out, "Not logged in")
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s <%s>\nmember since %s\n", user.Username, user.Email, user.CreatedAt.Format(time.RFC3339))
					return nil
				}

				user, err := a.Verify(ctx)
				if errors.Is(err, app.ErrNotLoggedIn) {
					fmt.Fprintln(out, "Not logged in")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out, user.Email)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&profile, "profile", false, "show username and signup time too")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App, out io.Writer) error {
				if err := a.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "Logged out")
				return nil
			})
		},
	}
}
