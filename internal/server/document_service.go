package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"docvault/internal/api"
	"docvault/internal/blobstore"
	"docvault/internal/codec"
	"docvault/internal/listing"
	"docvault/internal/models"
	"docvault/internal/resolve"
	"docvault/internal/store"
)

// DocumentService centralizes document validation, persistence and the
// write/delete ordering between the blob store and the record store.
type DocumentService struct {
	store  *store.Store
	blobs  blobstore.Store
	codec  *codec.Codec
	logger *slog.Logger
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(st *store.Store, blobs blobstore.Store, logger *slog.Logger) *DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{
		store:  st,
		blobs:  blobs,
		codec:  codec.New(logger),
		logger: logger,
	}
}

// Submit persists one finalized document payload. Validation happens before
// any I/O; the blob is written before the record, and a failed record write
// removes the orphaned blob.
func (s *DocumentService) Submit(ctx context.Context, ownerID string, req api.DocumentSubmitRequest) (api.DocumentResponse, error) {
	var resp api.DocumentResponse

	name, err := normalizeDocumentName(req.Name)
	if err != nil {
		return resp, err
	}
	kind, err := normalizeDocumentKind(req.Kind)
	if err != nil {
		return resp, err
	}
	if strings.TrimSpace(ownerID) == "" {
		return resp, unauthorized(fmt.Errorf("owner is required"))
	}

	ext, contentType := resolve.ForWrite(kind)

	decoded, err := s.codec.Decode(req.Payload, contentType)
	if err != nil {
		if errors.Is(err, codec.ErrCorruptPayload) {
			return resp, badRequestCode(err, ErrCodeCorruptPayload)
		}
		return resp, badRequest(err)
	}
	if len(decoded.Bytes) == 0 {
		return resp, badRequestCode(fmt.Errorf("document has no content"), ErrCodeEmptyDocument)
	}

	id := uuid.NewString()
	key := resolve.StorageKey(ownerID, id, ext)

	put, err := s.blobs.Put(ctx, key, bytes.NewReader(decoded.Bytes), contentType)
	if err != nil {
		return resp, upstreamFailure(fmt.Errorf("store blob %s: %w", key, err))
	}

	publicURL, err := s.blobs.MakePublic(ctx, key)
	if err != nil {
		s.cleanupBlob(ctx, key)
		return resp, upstreamFailure(fmt.Errorf("publish blob %s: %w", key, err))
	}

	category := models.CategoryImage
	if kind == models.KindPDF {
		category = models.CategoryPDF
	}

	raw := models.RawDocument{
		ID:         id,
		OwnerID:    ownerID,
		Name:       name,
		FileType:   category,
		FileURL:    publicURL,
		SizeBytes:  put.SizeBytes,
		StorageExt: ext,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.store.CreateDocument(ctx, &raw); err != nil {
		s.cleanupBlob(ctx, key)
		return resp, storeFailure(fmt.Errorf("create document record: %w", err))
	}

	s.logger.Info("document stored", "id", id, "owner", ownerID, "kind", kind, "size", put.SizeBytes)
	return toDocumentResponse(resolve.Resolve(raw)), nil
}

// List returns the owner's documents filtered and ordered per the query.
func (s *DocumentService) List(ctx context.Context, ownerID string, q listing.Query) ([]api.DocumentResponse, error) {
	raws, err := s.store.ListDocumentsByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeFailure(err)
	}

	records := make([]models.DocumentRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, resolve.Resolve(raw))
	}
	records = listing.Apply(records, q)

	out := make([]api.DocumentResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toDocumentResponse(rec))
	}
	return out, nil
}

// Get returns one document owned by ownerID.
func (s *DocumentService) Get(ctx context.Context, ownerID, id string) (api.DocumentResponse, error) {
	var resp api.DocumentResponse
	raw, err := s.ownedDocument(ctx, ownerID, id)
	if err != nil {
		return resp, err
	}
	return toDocumentResponse(resolve.Resolve(*raw)), nil
}

// Rename updates the display name of one owned document.
func (s *DocumentService) Rename(ctx context.Context, ownerID, id, name string) (api.DocumentResponse, error) {
	var resp api.DocumentResponse

	normalized, err := normalizeDocumentName(name)
	if err != nil {
		return resp, err
	}

	raw, err := s.ownedDocument(ctx, ownerID, id)
	if err != nil {
		return resp, err
	}

	matched, err := s.store.RenameDocument(ctx, id, normalized)
	if err != nil {
		return resp, storeFailure(err)
	}
	if !matched {
		return resp, notFound(fmt.Errorf("document %s not found", id))
	}

	raw.Name = normalized
	return toDocumentResponse(resolve.Resolve(*raw)), nil
}

// Remove deletes one owned document: blob first, record second. A missing
// blob is fine but any other blob failure leaves the record intact so the
// delete can be retried.
func (s *DocumentService) Remove(ctx context.Context, ownerID, id string) error {
	raw, err := s.ownedDocument(ctx, ownerID, id)
	if err != nil {
		return err
	}

	rec := resolve.Resolve(*raw)
	key := resolve.StorageKey(rec.OwnerID, rec.ID, resolve.ExtensionFor(rec))
	if err := s.blobs.Delete(ctx, key); err != nil {
		return upstreamFailure(fmt.Errorf("delete blob %s: %w", key, err))
	}

	if _, err := s.store.DeleteDocument(ctx, id); err != nil {
		return storeFailure(err)
	}

	s.logger.Info("document removed", "id", id, "owner", ownerID)
	return nil
}

func (s *DocumentService) ownedDocument(ctx context.Context, ownerID, id string) (*models.RawDocument, error) {
	raw, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	if raw == nil {
		return nil, notFound(fmt.Errorf("document %s not found", id))
	}
	if raw.OwnerID != ownerID {
		return nil, forbidden(fmt.Errorf("document %s is not owned by caller", id))
	}
	return raw, nil
}

func (s *DocumentService) cleanupBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.Error("cleanup orphaned blob", "key", key, "error", err)
	}
}

func toDocumentResponse(rec models.DocumentRecord) api.DocumentResponse {
	resp := api.DocumentResponse{
		ID:               rec.ID,
		Name:             rec.DisplayName,
		Type:             rec.Category,
		URL:              rec.PrimaryURL,
		CreatedAtDisplay: rec.CreatedAtDisplay,
		SizeBytes:        rec.SizeBytes,
		StorageExtension: rec.StorageExtension,
	}
	if !rec.CreatedAt.IsZero() {
		resp.CreatedAt = rec.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return resp
}
