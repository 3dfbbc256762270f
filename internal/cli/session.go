package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sm8ta/hospital_frontend/internal/adapter/ui/modals"
	"github.com/sm8ta/hospital_frontend/internal/app"
	"github.com/sm8ta/hospital_frontend/internal/config"
)

const tabSessionHint = `Note: tab storage ends the session with this command.
Run "hospitalctl shell" or pass --storage origin to stay signed in.`

func (c *CLI) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and open the dashboard of your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := c.readLine(cmd, "Password: ")
				if err != nil {
					return err
				}
				password = p
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				form := modals.NewLoginForm(a.Auth, a.Logger)
				defer form.Close()
				form.SetEmail(email)
				form.SetPassword(password)

				result, err := form.Submit(ctx)
				if err != nil {
					return errors.New(messageOr(form.ErrorMessage(), err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", result.Response.Role)
				printRoute(cmd, result.Route.Path, result.Route.Title)
				if !c.keep && a.Config.Session.Storage == config.StorageTab {
					fmt.Fprintln(cmd.ErrOrStderr(), tabSessionHint)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func (c *CLI) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session and return to the login page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Auth.Logout(ctx); err != nil {
					return errors.Wrap(err, "failed to open login page")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

func (c *CLI) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				id := a.Auth.WhoAmI(ctx)
				out := cmd.OutOrStdout()
				if !id.Session.Authenticated() {
					fmt.Fprintln(out, "Not signed in")
					return nil
				}

				fmt.Fprintf(out, "Role:    %s\n", id.Session.Role)
				fmt.Fprintf(out, "User ID: %s\n", valueOr(id.Session.UserID, "-"))
				if id.Claims != nil {
					if id.Claims.Username != "" {
						fmt.Fprintf(out, "User:    %s\n", id.Claims.Username)
					}
					if id.Claims.ExpiresAt != nil {
						exp := time.Unix(*id.Claims.ExpiresAt, 0)
						fmt.Fprintf(out, "Expires: %s\n", exp.Format(time.RFC3339))
					}
				}
				return nil
			})
		},
	}
}

func printRoute(cmd *cobra.Command, path, title string) {
	if title != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", title, path)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
}

func (c *CLI) readLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	if c.in == nil {
		c.in = bufio.NewReader(cmd.InOrStdin())
	}
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}

func messageOr(msg string, err error) string {
	if msg != "" {
		return msg
	}
	return err.Error()
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
