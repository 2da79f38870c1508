package server

import (
	"net/http"

	"todod/internal/api"
)

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req api.TagCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	tag, created, err := s.service.CreateTag(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, tag)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.service.ListTags(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleListItemTags(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	tags, err := s.service.ListItemTags(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleSyncItemTags(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.TagSyncRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	resp, err := s.service.SyncItemTags(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddTagToItem(w http.ResponseWriter, r *http.Request) {
	var req api.ItemTagRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	resp, err := s.service.AddTagToItem(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveTagFromItem(w http.ResponseWriter, r *http.Request) {
	var req api.ItemTagRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	resp, err := s.service.RemoveTagFromItem(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}
