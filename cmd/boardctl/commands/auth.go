package commands

import (
	"errors"
	"net/http"

	"boardsync/internal/api"
	"boardsync/internal/apiclient"

	"github.com/spf13/cobra"
)

func newLoginCmd(e *env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, path, err := e.credentials()
			if err != nil {
				return err
			}
			client := apiclient.New(creds.Server)
			resp, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				if apiclient.StatusOf(err) == http.StatusUnauthorized {
					return printError(cmd, "login failed", "The email or password is wrong.", nil)
				}
				return err
			}
			return storeLogin(cmd, path, creds, resp)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(e *env) *cobra.Command {
	var req api.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, path, err := e.credentials()
			if err != nil {
				return err
			}
			client := apiclient.New(creds.Server)
			resp, err := client.Register(cmd.Context(), req)
			if err != nil {
				var apiErr *apiclient.Error
				if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
					return printError(cmd, "account exists", apiErr.Message+".",
						[]string{"Log in instead:\n  boardctl login --email " + req.Email})
				}
				return err
			}
			return storeLogin(cmd, path, creds, resp)
		},
	}
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password, at least 6 characters")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func storeLogin(cmd *cobra.Command, path string, creds *Credentials, resp *api.AuthResponse) error {
	creds.Email = resp.User.Email
	creds.Token = resp.Token
	if err := SaveCredentials(path, creds); err != nil {
		return err
	}
	success(cmd, "Logged in as %s", resp.User.Email)
	return nil
}
