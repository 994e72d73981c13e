package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docvault/internal/api"
	"docvault/internal/assemble"
	"docvault/internal/codec"
	"docvault/internal/config"
	"docvault/internal/models"
	"docvault/internal/session"
)

type submitCmdOptions struct {
	docType string
	asPDF   bool
	outPath string
}

func newSubmitCmd(cfg *config.Config, out *outputFlags) *cobra.Command {
	opts := &submitCmdOptions{}
	cmd := &cobra.Command{
		Use:   "submit <name> <file> [<file>...]",
		Short: "Assemble page images or a PDF into a document and upload it",
		Args:  requireAtLeastArgs(2, "name and at least one file are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, cfg, opts, out, args)
		},
	}

	cmd.Flags().StringVarP(&opts.docType, "type", "t", string(models.KindScan), "document type for a single image (scan or upload)")
	cmd.Flags().BoolVar(&opts.asPDF, "pdf", false, "assemble pages into a multi-page PDF")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write the assembled artifact to a local file instead of uploading")
	return cmd
}

func runSubmit(cmd *cobra.Command, cfg *config.Config, opts *submitCmdOptions, out *outputFlags, args []string) error {
	name := strings.TrimSpace(args[0])
	files := args[1:]

	blob, kind, err := assembleFiles(files, opts)
	if err != nil {
		return err
	}

	if opts.outPath != "" {
		if err := os.WriteFile(opts.outPath, blob.Bytes, 0o644); err != nil {
			return err
		}
		return writePlain("wrote %s (%d bytes, %d pages)\n", opts.outPath, len(blob.Bytes), blob.PageCount)
	}

	payload := codec.New(nil).Encode(blob)

	return withClient(cfg, func(client *api.Client) error {
		resp, err := client.SubmitDocument(cmd.Context(), api.DocumentSubmitRequest{
			Name:    name,
			Kind:    string(kind),
			Payload: payload,
		})
		if err != nil {
			return err
		}
		if ok, err := out.structured(resp); ok {
			return err
		}
		return writePlain("%s\n", resp.ID)
	})
}

// assembleFiles turns the input files into one upload blob. A single .pdf
// input is passed through untouched; images go through the assembly
// pipeline, collapsing to a multi-page PDF when more than one page is
// captured or --pdf is set.
func assembleFiles(files []string, opts *submitCmdOptions) (models.DocumentBlob, models.DocumentKind, error) {
	var zero models.DocumentBlob

	if len(files) == 1 && strings.EqualFold(filepath.Ext(files[0]), ".pdf") {
		data, err := os.ReadFile(files[0])
		if err != nil {
			return zero, "", err
		}
		pageCount, err := assemble.ExtractPageCount(data)
		if err != nil {
			pageCount = 1
		}
		return models.DocumentBlob{
			PageCount:   pageCount,
			MediaKind:   models.MediaMultiPage,
			Bytes:       data,
			ContentType: "application/pdf",
		}, models.KindPDF, nil
	}

	sess := session.New()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return zero, "", err
		}
		base := filepath.Base(file)
		sess.AddPage(data, strings.TrimSuffix(base, filepath.Ext(base)))
	}
	sess.SetMode(session.ModeReviewing)

	if opts.asPDF || sess.Len() > 1 {
		blob, err := assemble.Assemble(sess.Snapshot(), assemble.KindPDF)
		if err != nil {
			return zero, "", err
		}
		return blob, models.KindPDF, nil
	}

	kind, err := models.ParseDocumentKind(opts.docType)
	if err != nil {
		return zero, "", err
	}
	if kind == models.KindPDF {
		return zero, "", fmt.Errorf("type pdf requires a .pdf input or --pdf")
	}

	blob, err := assemble.Assemble(sess.Snapshot(), assemble.KindSingleImage)
	if err != nil {
		return zero, "", err
	}
	return blob, kind, nil
}
