package server

import (
	"net/http"

	"docvault/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	authRequired, err := s.authService.AuthRequired(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.InfoResponse{
		DBPath:        s.dbPath,
		BlobRoot:      s.blobRoot,
		PublicBaseURL: s.publicBaseURL,
		AuthRequired:  authRequired,
	})
}
