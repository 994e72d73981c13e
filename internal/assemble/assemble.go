// Package assemble turns an ordered sequence of page images into a single
// transportable document blob: either the sole page image verbatim or a
// multi-page fixed-layout PDF.
package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"docvault/internal/models"
)

// ErrEmptyDocument reports an assembly attempt with zero pages.
var ErrEmptyDocument = errors.New("empty document")

// Kind selects the output layout.
type Kind string

const (
	// KindSingleImage emits the sole page image unchanged.
	KindSingleImage Kind = "single-image"
	// KindPDF concatenates all pages into one fixed-layout PDF.
	KindPDF Kind = "pdf"
)

const contentTypePDF = "application/pdf"

// Each page image is drawn covering the full A4 canvas regardless of its
// aspect ratio; this matches the historical output of the capture flow.
const importSpec = "form:A4, pos:full"

// Assemble fixes the session's page order into a durable artifact. After
// assembly, reordering requires re-assembly from the session.
func Assemble(pages []models.PageRecord, kind Kind) (models.DocumentBlob, error) {
	var zero models.DocumentBlob
	if len(pages) == 0 {
		return zero, ErrEmptyDocument
	}

	switch kind {
	case KindSingleImage:
		if len(pages) != 1 {
			return zero, fmt.Errorf("single-image document requires exactly one page, got %d", len(pages))
		}
		return models.DocumentBlob{
			PageCount:   1,
			MediaKind:   models.MediaSingleImage,
			Bytes:       pages[0].ImageBytes,
			ContentType: sniffImageContentType(pages[0].ImageBytes),
		}, nil
	case KindPDF:
		return assemblePDF(pages)
	default:
		return zero, fmt.Errorf("unknown assembly kind %q", kind)
	}
}

func assemblePDF(pages []models.PageRecord) (models.DocumentBlob, error) {
	var zero models.DocumentBlob

	imp, err := api.Import(importSpec, types.POINTS)
	if err != nil {
		return zero, fmt.Errorf("parse import spec: %w", err)
	}

	imgs := make([]io.Reader, 0, len(pages))
	for _, page := range pages {
		imgs = append(imgs, bytes.NewReader(page.ImageBytes))
	}

	var buf bytes.Buffer
	conf := model.NewDefaultConfiguration()
	if err := api.ImportImages(nil, &buf, imgs, imp, conf); err != nil {
		return zero, fmt.Errorf("import page images: %w", err)
	}

	out := buf.Bytes()
	count, err := api.PageCount(bytes.NewReader(out), conf)
	if err != nil {
		return zero, fmt.Errorf("verify assembled document: %w", err)
	}
	if count != len(pages) {
		return zero, fmt.Errorf("assembled document has %d pages, expected %d", count, len(pages))
	}

	return models.DocumentBlob{
		PageCount:   len(pages),
		MediaKind:   models.MediaMultiPage,
		Bytes:       out,
		ContentType: contentTypePDF,
	}, nil
}

// sniffImageContentType infers the MIME type from the image's source
// encoding. Unrecognized bytes fall back to image/png, the capture flow's
// screenshot format.
func sniffImageContentType(data []byte) string {
	detected := http.DetectContentType(data)
	if strings.HasPrefix(detected, "image/") {
		return detected
	}
	return "image/png"
}

// ExtractPageCount reports the page count of an assembled PDF blob.
func ExtractPageCount(pdf []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("read page count: %w", err)
	}
	return count, nil
}
