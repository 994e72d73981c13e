package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	internalauth "docvault/internal/auth"
	"docvault/internal/config"
	"docvault/internal/store"
)

// User management works against the database directly so the first
// account can be provisioned before any credentials exist.
func newUserCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage local user accounts",
	}
	cmd.AddCommand(newUserAddCmd(cfg, out))
	cmd.AddCommand(newUserListCmd(cfg, out))
	cmd.AddCommand(newUserSetDisabledCmd(cfg, out, "disable", "Disable one user", true))
	cmd.AddCommand(newUserSetDisabledCmd(cfg, out, "enable", "Enable one user", false))
	return cmd
}

func withStore(cfg *config.Config, fn func(*store.Store) error) error {
	if cfg == nil || cfg.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func newUserAddCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create one user account",
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
			if err := internalauth.ValidatePassword(password); err != nil {
				return err
			}

			hash, err := internalauth.HashPassword(password)
			if err != nil {
				return err
			}

			return withStore(cfg, func(st *store.Store) error {
				created, err := st.CreateUser(cmd.Context(), username, hash, time.Now())
				if err != nil {
					return err
				}

				if ok, err := out.structured(map[string]any{
					"id":       created.ID,
					"username": created.Username,
					"disabled": created.Disabled,
				}); ok {
					return err
				}
				return writePlain("created user %s (%s)\n", created.Username, created.ID)
			})
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	return cmd
}

func newUserListCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List provisioned users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st *store.Store) error {
				users, err := st.ListUsers(cmd.Context())
				if err != nil {
					return err
				}

				if ok, err := out.structured(map[string]any{"count": len(users), "users": usersPayload(users)}); ok {
					return err
				}
				if len(users) == 0 {
					return writePlain("no users configured\n")
				}
				if err := writePlain("USERNAME\tSTATUS\tID\n"); err != nil {
					return err
				}
				for _, user := range users {
					status := "enabled"
					if user.Disabled {
						status = "disabled"
					}
					if err := writePlain("%s\t%s\t%s\n", user.Username, status, user.ID); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newUserSetDisabledCmd(cfg *config.Config, out *outputFlags, name, short string, disabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <username>",
		Short: short,
		Args:  requireExactlyArgs(1, "username is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := internalauth.NormalizeUsername(args[0])
			if err != nil {
				return err
			}

			return withStore(cfg, func(st *store.Store) error {
				updated, err := st.SetUserDisabled(cmd.Context(), username, disabled, time.Now())
				if err != nil {
					return err
				}
				if updated == nil {
					return fmt.Errorf("no such user: %s", username)
				}

				if ok, err := out.structured(map[string]any{
					"id":       updated.ID,
					"username": updated.Username,
					"disabled": updated.Disabled,
				}); ok {
					return err
				}

				action := "enabled"
				if disabled {
					action = "disabled"
				}
				return writePlain("%s user %s\n", action, updated.Username)
			})
		},
	}
}

func usersPayload(users []store.AuthUser) []map[string]any {
	out := make([]map[string]any, 0, len(users))
	for _, user := range users {
		out = append(out, map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"disabled": user.Disabled,
		})
	}
	return out
}
