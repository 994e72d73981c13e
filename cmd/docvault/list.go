package main

import (
	"net/url"

	"github.com/spf13/cobra"

	"docvault/internal/api"
	"docvault/internal/config"
)

func newListCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	var (
		search  string
		docType string
		sort    string
		dir     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				query := url.Values{}
				setIfNotEmpty(query, "search", search)
				setIfNotEmpty(query, "type", docType)
				setIfNotEmpty(query, "sort", sort)
				setIfNotEmpty(query, "dir", dir)

				resp, err := client.ListDocuments(cmd.Context(), query)
				if err != nil {
					return err
				}
				if ok, err := out.structured(resp); ok {
					return err
				}
				return writeDocumentTable(resp.Documents)
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "substring filter on the name")
	cmd.Flags().StringVar(&docType, "type", "", "type filter (image or pdf)")
	cmd.Flags().StringVar(&sort, "sort", "", "sort field (name, type, createdAt)")
	cmd.Flags().StringVar(&dir, "dir", "", "sort direction (asc, desc)")

	return cmd
}
