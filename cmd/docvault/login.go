package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docvault/internal/api"
	internalauth "docvault/internal/auth"
	"docvault/internal/config"
)

func newLoginCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Exchange credentials for an API token",
		Args:  requireExactlyArgs(1, "username is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !passwordStdin {
				return fmt.Errorf("--password-stdin is required")
			}

			username, err := internalauth.NormalizeUsername(args[0])
			if err != nil {
				return err
			}

			password, err := readPasswordStdin()
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Login(cmd.Context(), api.AuthLoginRequest{Username: username, Password: password})
				if err != nil {
					return err
				}
				if ok, err := out.structured(resp); ok {
					return err
				}
				if err := writePlain("%s\n", resp.Token); err != nil {
					return err
				}
				return writePlain("export DOCVAULT_API_TOKEN=%s to authenticate subsequent commands\n", resp.Token)
			})
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	return cmd
}

func newLogoutCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				if err := client.Logout(cmd.Context()); err != nil {
					return err
				}
				return writePlain("logged out\n")
			})
		},
	}
}
