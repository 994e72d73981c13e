package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
)

// handleGetBlob streams stored document bytes. Keys mirror the storage
// layout ({ownerId}/{documentId}.{ext}) and are served read-only.
func (s *Server) handleGetBlob(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" || strings.Contains(key, "..") {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("invalid blob key"), ErrCodeInvalidArgument))
		return
	}

	rc, err := s.blobs.Open(r.Context(), key)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusNotFound, notFound(fmt.Errorf("blob %s not found", key)))
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")

	if _, err := io.Copy(w, rc); err != nil {
		s.log().Error("stream blob", "key", key, "error", err)
	}
}
