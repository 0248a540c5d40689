package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careerlens/careerlens/internal/models"
)

func (c *cli) signupCmd() *cobra.Command {
	var req models.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a CareerLens account",
		Long: `Create a local CareerLens account. The password is read from stdin when
--password is not given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := c.secret(req.Password, "Password: ")
			if err != nil {
				return err
			}
			req.Password = pw

			msg, err := c.api.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}
			if c.jsonOut() {
				return c.printJSON(map[string]any{"ok": true, "message": msg})
			}
			c.printf("✓ %s\n", msg)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Username, "username", "", "username")
	f.StringVar(&req.Name, "name", "", "full name")
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVar(&req.Password, "password", "", "password (prompted when empty)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var username, password, googleToken string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the user locally",
		Long: `Log in with a username and password, or with a Google ID token.

Examples:
  careerlens login --username asha
  careerlens login --google-token "$ID_TOKEN"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				u   *models.PublicUser
				err error
			)
			switch {
			case googleToken != "":
				u, err = c.api.GoogleLogin(cmd.Context(), googleToken)
			case username != "":
				password, err = c.secret(password, "Password: ")
				if err != nil {
					return err
				}
				u, err = c.api.Login(cmd.Context(), username, password)
			default:
				return errors.New("either --username or --google-token is required")
			}
			if err != nil {
				return err
			}
			if u == nil {
				return errors.New("server returned no user")
			}
			if err := c.tracker.SetCurrentUser(u); err != nil {
				return err
			}

			if c.jsonOut() {
				return c.printJSON(u)
			}
			c.printf("✓ Logged in as %s (%s)\n", displayName(u), u.Username)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&username, "username", "", "username")
	f.StringVar(&password, "password", "", "password (prompted when empty)")
	f.StringVar(&googleToken, "google-token", "", "Google ID token")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current user and clear local activity",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := c.tracker.Clear(); err != nil {
				return err
			}
			if c.jsonOut() {
				return c.printJSON(map[string]any{"ok": true})
			}
			c.printf("Logged out. Local activity cleared.\n")
			return nil
		},
	}
}

func (c *cli) deleteAccountCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Permanently delete the logged-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := c.currentUser()
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("this deletes %q and cannot be undone; pass --yes to confirm", u.Username)
			}

			msg, err := c.api.DeleteAccount(cmd.Context(), u.Username)
			if err != nil {
				return err
			}
			if err := c.tracker.Clear(); err != nil {
				return err
			}
			if c.jsonOut() {
				return c.printJSON(map[string]any{"ok": true, "message": msg})
			}
			c.printf("✓ %s\n", msg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func displayName(u *models.PublicUser) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
