package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Auth.
	mux.HandleFunc("POST /v1/auth/login", s.handleAuthLogin)
	mux.HandleFunc("POST /v1/auth/logout", s.handleAuthLogout)

	// Documents collection.
	mux.HandleFunc("POST /v1/documents", s.handleSubmitDocument)
	mux.HandleFunc("GET /v1/documents", s.handleListDocuments)

	// Single document.
	mux.HandleFunc("GET /v1/documents/{id}", s.handleGetDocument)
	mux.HandleFunc("PATCH /v1/documents/{id}", s.handleRenameDocument)
	mux.HandleFunc("DELETE /v1/documents/{id}", s.handleDeleteDocument)

	// Stored payloads.
	mux.HandleFunc("GET /blobs/{key...}", s.handleGetBlob)

	return s.withRequestLogging(s.withAuth(mux))
}
