// Package resolve normalizes document metadata across the schema
// generations that coexist in the record store. It is the single place the
// fallback chains live: listing, display and deletion all go through it so
// storage-key reconstruction never diverges from write-time naming.
package resolve

import (
	"strings"
	"time"

	"docvault/internal/models"
)

const (
	// UntitledName is the display name for records missing a name.
	UntitledName = "Untitled Document"
	// UnknownDateDisplay is shown for records missing a creation time.
	UnknownDateDisplay = "Unknown Date"

	extPDF = "pdf"
	extPNG = "png"

	contentTypePDF = "application/pdf"
	contentTypePNG = "image/png"

	displayDateLayout = "2006-01-02"
)

// createdAtLayouts are tried in order when parsing stored timestamps.
// First-generation rows store ISO strings; some imports carry date-only
// values.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ForWrite determines the storage extension and content type for a new
// document of the given kind. The chosen extension becomes part of the
// durable storage key and is stored on the record, not re-derived later.
func ForWrite(kind models.DocumentKind) (ext, contentType string) {
	if kind == models.KindPDF {
		return extPDF, contentTypePDF
	}
	return extPNG, contentTypePNG
}

// StorageKey is the object-store address of a document's payload. It is
// derivable at delete time solely from the resolved record.
func StorageKey(ownerID, documentID, ext string) string {
	return ownerID + "/" + documentID + "." + ext
}

// Resolve computes the canonical view of a raw record. It is a pure
// function and idempotent: resolving an already-canonical record yields the
// same record.
func Resolve(raw models.RawDocument) models.DocumentRecord {
	rec := models.DocumentRecord{
		ID:        raw.ID,
		OwnerID:   raw.OwnerID,
		SizeBytes: raw.SizeBytes,
	}

	rec.DisplayName = strings.TrimSpace(raw.Name)
	if rec.DisplayName == "" {
		rec.DisplayName = UntitledName
	}

	switch {
	case raw.FileURL != "":
		rec.PrimaryURL = raw.FileURL
	case raw.PDFURL != "":
		rec.PrimaryURL = raw.PDFURL
	case raw.ImageURL != "":
		rec.PrimaryURL = raw.ImageURL
	}

	category := strings.TrimSpace(raw.FileType)
	if category == "" {
		category = strings.TrimSpace(raw.Type)
	}
	if category == "" {
		category = models.CategoryImage
	}
	// Unrecognized values pass through verbatim apart from case folding and
	// become their own display category.
	rec.Category = strings.ToLower(category)

	rec.CreatedAt = parseCreatedAt(raw.CreatedAt)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAtDisplay = UnknownDateDisplay
	} else {
		rec.CreatedAtDisplay = rec.CreatedAt.Format(displayDateLayout)
	}

	rec.StorageExtension = strings.TrimSpace(raw.StorageExt)
	if rec.StorageExtension == "" {
		rec.StorageExtension = extensionForCategory(rec.Category)
	}

	return rec
}

// ExtensionFor reports the storage extension of a resolved record: the
// stored extension when present, otherwise the category-derived one. This is
// the same rule write-time resolution uses, so deletion reconstructs the
// exact key the submit path wrote.
func ExtensionFor(rec models.DocumentRecord) string {
	if rec.StorageExtension != "" {
		return rec.StorageExtension
	}
	return extensionForCategory(rec.Category)
}

func extensionForCategory(category string) string {
	if strings.EqualFold(category, models.CategoryPDF) {
		return extPDF
	}
	return extPNG
}

func parseCreatedAt(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
