package models

import (
	"fmt"
	"strings"
	"time"
)

// DocumentKind classifies the authoring action that produced a document.
type DocumentKind string

const (
	KindScan   DocumentKind = "scan"
	KindUpload DocumentKind = "upload"
	KindPDF    DocumentKind = "pdf"
)

// Document categories as shown in listings. Unrecognized raw values pass
// through verbatim and form their own display category.
const (
	CategoryImage = "image"
	CategoryPDF   = "pdf"
)

var validDocumentKinds = map[DocumentKind]struct{}{
	KindScan:   {},
	KindUpload: {},
	KindPDF:    {},
}

// ParseDocumentKind validates a raw kind value.
func ParseDocumentKind(raw string) (DocumentKind, error) {
	kind := DocumentKind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := validDocumentKinds[kind]; !ok {
		return "", fmt.Errorf("invalid document kind %q", raw)
	}
	return kind, nil
}

// RawDocument is a persisted document row as stored, before resolution.
// Several schema generations coexist: first-generation rows carry only
// name/type/image_url, later rows add file_url, file_type, size_bytes and
// storage_ext. Any subset of the optional fields may be empty.
type RawDocument struct {
	ID         string `json:"id"`
	OwnerID    string `json:"owner_id"`
	Name       string `json:"name,omitempty"`
	Type       string `json:"type,omitempty"`
	FileType   string `json:"file_type,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	PDFURL     string `json:"pdf_url,omitempty"`
	FileURL    string `json:"file_url,omitempty"`
	SizeBytes  int64  `json:"size_bytes,omitempty"`
	StorageExt string `json:"storage_ext,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// DocumentRecord is the canonical, display-ready view of a document after
// fallback-chain resolution. Resolution is mandatory before display and
// before computing a storage key.
type DocumentRecord struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	DisplayName      string    `json:"display_name"`
	Category         string    `json:"category"`
	PrimaryURL       string    `json:"primary_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	CreatedAtDisplay string    `json:"created_at_display"`
	SizeBytes        int64     `json:"size_bytes,omitempty"`
	StorageExtension string    `json:"storage_extension"`
}

// DocumentBlob is an assembled artifact: a single image or a multi-page
// fixed-layout document. It exists only in memory and in transit.
type DocumentBlob struct {
	PageCount   int
	MediaKind   MediaKind
	Bytes       []byte
	ContentType string
}

// MediaKind distinguishes the two blob layouts.
type MediaKind string

const (
	MediaSingleImage MediaKind = "single-image"
	MediaMultiPage   MediaKind = "multi-page-document"
)
