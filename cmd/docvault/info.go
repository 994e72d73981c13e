package main

import (
	"github.com/spf13/cobra"

	"docvault/internal/api"
	"docvault/internal/config"
)

func newInfoCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server and storage info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}

				if ok, err := out.structured(resp); ok {
					return err
				}

				_ = writePlain("db_path: %s\n", resp.DBPath)
				_ = writePlain("blob_root: %s\n", resp.BlobRoot)
				_ = writePlain("public_base_url: %s\n", resp.PublicBaseURL)
				_ = writePlain("auth_required: %t\n", resp.AuthRequired)
				return nil
			})
		},
	}
}
