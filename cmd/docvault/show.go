package main

import (
	"os"

	"github.com/spf13/cobra"

	"docvault/internal/api"
	"docvault/internal/config"
)

func newShowCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	var downloadPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show document details",
		Args:  requireExactlyArgs(1, "id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetDocument(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if downloadPath != "" {
					f, err := os.Create(downloadPath)
					if err != nil {
						return err
					}
					defer f.Close()
					if err := client.FetchBlob(cmd.Context(), resp.URL, f); err != nil {
						return err
					}
					return writePlain("wrote %s\n", downloadPath)
				}

				if ok, err := out.structured(resp); ok {
					return err
				}
				return writeDocumentDetail(resp)
			})
		},
	}

	cmd.Flags().StringVarP(&downloadPath, "download", "d", "", "download the stored bytes to a local file")
	return cmd
}
