package server

import (
	"net/http"

	"docvault/internal/api"
)

func (s *Server) handleSubmitDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requestOwnerID(w, r)
	if !ok {
		return
	}

	var req api.DocumentSubmitRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	resp, err := s.service.Submit(r.Context(), ownerID, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requestOwnerID(w, r)
	if !ok {
		return
	}

	query, err := parseListQuery(r)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	docs, err := s.service.List(r.Context(), ownerID, query)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.DocumentListResponse{Documents: docs, Total: len(docs)})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requestOwnerID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	resp, err := s.service.Get(r.Context(), ownerID, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRenameDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requestOwnerID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var req api.DocumentRenameRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	resp, err := s.service.Rename(r.Context(), ownerID, id, req.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requestOwnerID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := s.service.Remove(r.Context(), ownerID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
