package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"notehub/internal/domain/entities"
	"notehub/internal/domain/routes"
	"notehub/internal/remote"
)

type authCall func(c *remote.Client, ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error)

func newAuthCommand(a *app, use, short string, call authCall) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := entities.AuthRequest{Email: strings.TrimSpace(email), Password: password}
			if req.Email == "" || req.Password == "" {
				return errors.New(MsgInvalidCredentials)
			}

			resp, err := call(a.api, cmd.Context(), req)
			if err != nil {
				if code := remote.StatusCode(err); code >= 400 && code < 500 {
					return errors.New(MsgInvalidCredentials)
				}
				return fmt.Errorf("%s: %w", MsgSomethingWentWrong, err)
			}

			a.state.Auth.SetUser(&resp.Data)
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", resp.Data.Username, resp.Data.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCommand(a *app) *cobra.Command {
	return newAuthCommand(a, "login", "Sign in", (*remote.Client).Login)
}

func newRegisterCommand(a *app) *cobra.Command {
	return newAuthCommand(a, "register", "Create an account and sign in", (*remote.Client).Register)
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.state.Guard.Logout(cmd.Context(), "")
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the session and show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.requireSession(cmd, routes.ProfilePath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}

func newProfileCommand(a *app) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Manage the profile",
	}

	profile.AddCommand(&cobra.Command{
		Use:   "set-username <username>",
		Short: "Change the username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(cmd, routes.ProfilePath+"/edit"); err != nil {
				return err
			}

			user, err := a.api.UpdateMe(cmd.Context(), entities.UserUpdate{Username: strings.TrimSpace(args[0])})
			if err != nil {
				if errors.Is(err, entities.ErrUsernameConflict) {
					return errors.New(MsgUsernameTaken)
				}
				return errors.New(MsgErrorSavingProfile)
			}

			a.state.Auth.SetUser(user)
			fmt.Fprintf(cmd.OutOrStdout(), "Username updated to %s\n", user.Username)
			return nil
		},
	})

	return profile
}
