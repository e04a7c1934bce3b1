package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/folioadmin/folioadmin-go/internal/admin"
	"github.com/folioadmin/folioadmin-go/internal/form"
	"github.com/folioadmin/folioadmin-go/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var f form.Login

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if f.Username == "" {
				if f.Username, err = a.prompt("User name: "); err != nil {
					return err
				}
			}
			if f.Password == "" {
				if f.Password, err = a.prompt("Password: "); err != nil {
					return err
				}
			}

			s, err := admin.NewLoginPage(a.deps).Submit(cmd.Context(), &f)
			if err != nil {
				return fieldError(err)
			}
			fmt.Fprintf(a.out, "signed in as %s\n", s.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&f.Password, "password", "p", "", "password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.deps.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.sessions.Load(cmd.Context())
			if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrInvalidToken) {
				fmt.Fprintln(a.out, "not signed in")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s (id %d)\n", s.Username, s.UserID)
			if !s.ExpiresAt.IsZero() {
				fmt.Fprintf(a.out, "token expires %s\n", s.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}
