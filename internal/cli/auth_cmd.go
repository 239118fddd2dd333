package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akovalenko/fitterm/internal/api"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Session.LoggedIn() {
				fmt.Printf("Already signed in as %s\n", app.Session.User().Username)
				return nil
			}
			creds := api.Credentials{Username: username, Password: password}
			if err := app.Session.Login(cmd.Context(), creds); err != nil {
				return err
			}
			fmt.Printf("Signed in as %s\n", app.Session.User().Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := app.Session.User()
			if u == nil {
				fmt.Println("Not signed in.")
				return nil
			}
			fmt.Printf("%s (%s)\n", u.Username, u.FullName)
			if u.Email != "" {
				fmt.Println(u.Email)
			}
			return nil
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	var username, password, fullname, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.RegisterRequest{
				Username: username,
				Password: password,
				FullName: fullname,
				Email:    email,
			}
			if err := app.Account.Register(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Printf("Registered %s. Sign in with `fitterm login`.\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&fullname, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address (optional)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
