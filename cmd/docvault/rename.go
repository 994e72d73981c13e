package main

import (
	"strings"

	"github.com/spf13/cobra"

	"docvault/internal/api"
	"docvault/internal/config"
)

func newRenameCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new name>",
		Short: "Rename a document",
		Args:  requireAtLeastArgs(2, "id and new name are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			name := strings.Join(args[1:], " ")

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.RenameDocument(cmd.Context(), id, api.DocumentRenameRequest{Name: name})
				if err != nil {
					return err
				}
				if ok, err := out.structured(resp); ok {
					return err
				}
				return writePlain("renamed %s to %s\n", resp.ID, resp.Name)
			})
		},
	}
}
