package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"docvault/internal/models"
)

const documentColumns = `id, owner_id, name, type, image_url, created_at, file_url, pdf_url, file_type, size_bytes, storage_ext`

// CreateDocument inserts one document row. All current-generation columns
// are written; rows from earlier schema generations coexist in the same
// table with NULLs in the newer columns.
func (s *Store) CreateDocument(ctx context.Context, doc *models.RawDocument) error {
	if doc == nil {
		return fmt.Errorf("document is required")
	}
	if strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("document id is required")
	}
	if strings.TrimSpace(doc.OwnerID) == "" {
		return fmt.Errorf("owner id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (
			id, owner_id, name, type, image_url, created_at, file_url, pdf_url, file_type, size_bytes, storage_ext
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		doc.ID,
		doc.OwnerID,
		nullIfEmpty(doc.Name),
		nullIfEmpty(doc.Type),
		nullIfEmpty(doc.ImageURL),
		nullIfEmpty(doc.CreatedAt),
		nullIfEmpty(doc.FileURL),
		nullIfEmpty(doc.PDFURL),
		nullIfEmpty(doc.FileType),
		doc.SizeBytes,
		nullIfEmpty(doc.StorageExt),
	)
	return err
}

// GetDocument returns one document by id, or nil when absent.
func (s *Store) GetDocument(ctx context.Context, id string) (*models.RawDocument, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE id = ?
		LIMIT 1
	`, id)
	return scanDocument(row)
}

// ListDocumentsByOwner returns every document owned by ownerID. Ordering is
// left to the caller; rows come back in insertion order.
func (s *Store) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]models.RawDocument, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE owner_id = ?
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]models.RawDocument, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// RenameDocument updates the display name of one document. Returns false
// when no row matched.
func (s *Store) RenameDocument(ctx context.Context, id, name string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, fmt.Errorf("document id is required")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET name = ?
		WHERE id = ?
	`, name, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteDocument deletes one document row by id. Returns false when no row
// matched.
func (s *Store) DeleteDocument(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, fmt.Errorf("document id is required")
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE id = ?
	`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanDocument(scanner interface {
	Scan(dest ...any) error
}) (*models.RawDocument, error) {
	var doc models.RawDocument
	var name, docType, imageURL, createdAt sql.NullString
	var fileURL, pdfURL, fileType, storageExt sql.NullString
	var sizeBytes sql.NullInt64

	if err := scanner.Scan(
		&doc.ID,
		&doc.OwnerID,
		&name,
		&docType,
		&imageURL,
		&createdAt,
		&fileURL,
		&pdfURL,
		&fileType,
		&sizeBytes,
		&storageExt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	doc.Name = name.String
	doc.Type = docType.String
	doc.ImageURL = imageURL.String
	doc.CreatedAt = createdAt.String
	doc.FileURL = fileURL.String
	doc.PDFURL = pdfURL.String
	doc.FileType = fileType.String
	doc.SizeBytes = sizeBytes.Int64
	doc.StorageExt = storageExt.String
	return &doc, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
