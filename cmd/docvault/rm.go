package main

import (
	"github.com/spf13/cobra"

	"docvault/internal/api"
	"docvault/internal/config"
)

func newRmCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id> [<id>...]",
		Aliases: []string{"delete"},
		Short:   "Delete one or more documents",
		Args:    requireAtLeastArgs(1, "id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				deleted := make([]string, 0, len(args))
				for _, id := range args {
					if err := client.DeleteDocument(cmd.Context(), id); err != nil {
						return err
					}
					deleted = append(deleted, id)
				}
				if ok, err := out.structured(map[string]any{"deleted": deleted}); ok {
					return err
				}
				for _, id := range deleted {
					if err := writePlain("deleted %s\n", id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
