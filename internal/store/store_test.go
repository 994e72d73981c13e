package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"docvault/internal/models"
)

func openTestStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "docvault.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return st, context.Background()
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "docvault.db")

	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopen runs migrations against an already migrated database.
	st, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close after reopen: %v", err)
	}
}

func TestDocumentLifecycle(t *testing.T) {
	st, ctx := openTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	doc := &models.RawDocument{
		ID:         "doc-1",
		OwnerID:    "du-owner",
		Name:       "Tax Return 2025",
		Type:       "pdf",
		FileURL:    "http://localhost:8080/blobs/du-owner/doc-1.pdf",
		FileType:   "pdf",
		SizeBytes:  2048,
		StorageExt: "pdf",
		CreatedAt:  formatTime(now),
	}
	if err := st.CreateDocument(ctx, doc); err != nil {
		t.Fatalf("create document: %v", err)
	}

	exists, err := st.DocumentExists("doc-1")
	if err != nil {
		t.Fatalf("document exists: %v", err)
	}
	if !exists {
		t.Fatal("expected document to exist")
	}

	loaded, err := st.GetDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected loaded document")
	}
	if loaded.Name != doc.Name {
		t.Fatalf("expected name %q, got %q", doc.Name, loaded.Name)
	}
	if loaded.FileURL != doc.FileURL {
		t.Fatalf("expected file url %q, got %q", doc.FileURL, loaded.FileURL)
	}
	if loaded.SizeBytes != doc.SizeBytes {
		t.Fatalf("expected size %d, got %d", doc.SizeBytes, loaded.SizeBytes)
	}
	if loaded.CreatedAt != doc.CreatedAt {
		t.Fatalf("expected created_at %q, got %q", doc.CreatedAt, loaded.CreatedAt)
	}

	renamed, err := st.RenameDocument(ctx, "doc-1", "Tax Return (final)")
	if err != nil {
		t.Fatalf("rename document: %v", err)
	}
	if !renamed {
		t.Fatal("expected rename to match a row")
	}
	loaded, err = st.GetDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get after rename: %v", err)
	}
	if loaded.Name != "Tax Return (final)" {
		t.Fatalf("expected renamed document, got %q", loaded.Name)
	}

	deleted, err := st.DeleteDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("delete document: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to match a row")
	}
	loaded, err = st.GetDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected no document after delete")
	}
}

func TestGetDocumentMissing(t *testing.T) {
	st, ctx := openTestStore(t)

	loaded, err := st.GetDocument(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing document: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected nil for missing document")
	}

	renamed, err := st.RenameDocument(ctx, "nope", "x")
	if err != nil {
		t.Fatalf("rename missing document: %v", err)
	}
	if renamed {
		t.Fatal("expected rename of missing document to match no rows")
	}

	deleted, err := st.DeleteDocument(ctx, "nope")
	if err != nil {
		t.Fatalf("delete missing document: %v", err)
	}
	if deleted {
		t.Fatal("expected delete of missing document to match no rows")
	}
}

func TestListDocumentsByOwnerScopesRows(t *testing.T) {
	st, ctx := openTestStore(t)
	now := formatTime(time.Now())

	for _, doc := range []models.RawDocument{
		{ID: "a", OwnerID: "owner-1", Name: "first", CreatedAt: now},
		{ID: "b", OwnerID: "owner-1", Name: "second", CreatedAt: now},
		{ID: "c", OwnerID: "owner-2", Name: "other", CreatedAt: now},
	} {
		doc := doc
		if err := st.CreateDocument(ctx, &doc); err != nil {
			t.Fatalf("create %s: %v", doc.ID, err)
		}
	}

	docs, err := st.ListDocumentsByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents for owner-1, got %d", len(docs))
	}
	for _, d := range docs {
		if d.OwnerID != "owner-1" {
			t.Fatalf("unexpected owner %q in listing", d.OwnerID)
		}
	}

	docs, err = st.ListDocumentsByOwner(ctx, "owner-3")
	if err != nil {
		t.Fatalf("list empty owner: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected empty slice, got %d rows", len(docs))
	}
}

func TestFirstGenerationRowsSurviveMigrations(t *testing.T) {
	st, ctx := openTestStore(t)

	// Simulate a row written before file_url, pdf_url, file_type,
	// size_bytes and storage_ext existed.
	_, err := st.db.ExecContext(ctx, `
		INSERT INTO documents (id, owner_id, name, type, image_url, created_at)
		VALUES ('legacy-1', 'owner-1', 'Old Scan', 'scan', 'http://legacy/img.png', '2023-04-01T10:00:00Z')
	`)
	if err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}

	loaded, err := st.GetDocument(ctx, "legacy-1")
	if err != nil {
		t.Fatalf("get legacy document: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected legacy document")
	}
	if loaded.ImageURL != "http://legacy/img.png" {
		t.Fatalf("expected legacy image url, got %q", loaded.ImageURL)
	}
	if loaded.FileURL != "" || loaded.PDFURL != "" || loaded.FileType != "" {
		t.Fatalf("expected empty v2 columns, got %+v", loaded)
	}
	if loaded.SizeBytes != 0 {
		t.Fatalf("expected zero size for legacy row, got %d", loaded.SizeBytes)
	}
}

func TestAuthUserAndSessionLifecycle(t *testing.T) {
	st, ctx := openTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	count, err := st.CountEnabledUsers(ctx)
	if err != nil {
		t.Fatalf("count enabled users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 users, got %d", count)
	}

	created, err := st.CreateUser(ctx, "Alice", "hash-1", now)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created == nil {
		t.Fatal("expected created user")
	}
	if created.Username != "alice" {
		t.Fatalf("expected normalized username alice, got %q", created.Username)
	}

	count, err = st.CountEnabledUsers(ctx)
	if err != nil {
		t.Fatalf("count enabled users after create: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}

	loaded, err := st.GetUserByUsername(ctx, "ALICE")
	if err != nil {
		t.Fatalf("get user by username: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected loaded user")
	}
	if loaded.ID != created.ID {
		t.Fatalf("expected loaded id %q, got %q", created.ID, loaded.ID)
	}

	expiresAt := now.Add(2 * time.Hour)
	if err := st.CreateSession(ctx, created.ID, "token-hash", expiresAt, now); err != nil {
		t.Fatalf("create session: %v", err)
	}

	authed, err := st.GetUserBySessionTokenHash(ctx, "token-hash", now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("get user by session token hash: %v", err)
	}
	if authed == nil {
		t.Fatal("expected authenticated user from session")
	}
	if authed.ID != created.ID {
		t.Fatalf("expected session user %q, got %q", created.ID, authed.ID)
	}

	expired, err := st.GetUserBySessionTokenHash(ctx, "token-hash", now.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("get expired session: %v", err)
	}
	if expired != nil {
		t.Fatal("expected expired session to resolve no user")
	}

	if err := st.RevokeSessionByTokenHash(ctx, "token-hash", now.Add(time.Hour)); err != nil {
		t.Fatalf("revoke session: %v", err)
	}
	revoked, err := st.GetUserBySessionTokenHash(ctx, "token-hash", now.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("get revoked session: %v", err)
	}
	if revoked != nil {
		t.Fatal("expected revoked session to resolve no user")
	}
}

func TestDisabledUserCannotAuthenticate(t *testing.T) {
	st, ctx := openTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	created, err := st.CreateUser(ctx, "bob", "hash-2", now)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := st.CreateSession(ctx, created.ID, "bob-token", now.Add(time.Hour), now); err != nil {
		t.Fatalf("create session: %v", err)
	}

	updated, err := st.SetUserDisabled(ctx, "bob", true, now)
	if err != nil {
		t.Fatalf("disable user: %v", err)
	}
	if updated == nil || !updated.Disabled {
		t.Fatal("expected disabled user")
	}

	authed, err := st.GetUserBySessionTokenHash(ctx, "bob-token", now.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("get session for disabled user: %v", err)
	}
	if authed != nil {
		t.Fatal("expected disabled user session to resolve no user")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	st, ctx := openTestStore(t)
	now := time.Now().UTC()

	if _, err := st.CreateUser(ctx, "carol", "h1", now); err != nil {
		t.Fatalf("create first user: %v", err)
	}
	if _, err := st.CreateUser(ctx, "Carol", "h2", now); err == nil {
		t.Fatal("expected unique constraint error for duplicate username")
	}
}
