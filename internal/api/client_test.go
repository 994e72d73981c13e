package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestClientSubmitDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/documents" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var req DocumentSubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Name != "Receipts" {
			t.Fatalf("unexpected name %q", req.Name)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(DocumentResponse{ID: "doc-1", Name: req.Name, Type: "pdf"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("tok-1")

	resp, err := client.SubmitDocument(context.Background(), DocumentSubmitRequest{
		Name:    "Receipts",
		Kind:    "pdf",
		Payload: "data:application/pdf;base64,AAAA",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.ID != "doc-1" {
		t.Fatalf("unexpected id %q", resp.ID)
	}
}

func TestClientListDocumentsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/documents" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("sort"); got != "name" {
			t.Fatalf("unexpected sort %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(DocumentListResponse{
			Documents: []DocumentResponse{{ID: "a"}, {ID: "b"}},
			Total:     2,
		})
	}))
	defer srv.Close()

	query := url.Values{}
	query.Set("sort", "name")

	resp, err := NewClient(srv.URL).ListDocuments(context.Background(), query)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Total != 2 || len(resp.Documents) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestClientDecodesStructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:     "document not found",
			Code:      "not_found",
			ErrorCode: 2001,
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetDocument(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "not_found" || apiErr.ErrorCode != 2001 {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestClientLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(AuthLoginResponse{Token: "fresh-token", Username: "alice"})
		case "/health":
			if got := r.Header.Get("Authorization"); got != "Bearer fresh-token" {
				t.Fatalf("expected login token on later request, got %q", got)
			}
			w.WriteHeader(http.StatusOK)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Login(context.Background(), AuthLoginRequest{Username: "alice", Password: "password-123"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
