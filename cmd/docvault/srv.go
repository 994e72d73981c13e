package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"docvault/internal/blobstore"
	"docvault/internal/config"
	"docvault/internal/server"
	"docvault/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the docvault API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}
			if cfg.BlobRoot == "" {
				return fmt.Errorf("blob root is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			blobs, err := blobstore.NewLocalDir(cfg.BlobRoot, cfg.PublicBaseURL)
			if err != nil {
				return err
			}

			srv := server.New(st, blobs, server.Options{
				Addr:           addr,
				DBPath:         cfg.DBPath,
				BlobRoot:       cfg.BlobRoot,
				PublicBaseURL:  cfg.PublicBaseURL,
				UploadMaxBytes: cfg.Uploads.MaxBytes,
				Logger:         logger,
			})
			return srv.ListenAndServe()
		},
	}
}
