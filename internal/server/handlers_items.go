package server

import (
	"net/http"

	"todod/internal/api"
	"todod/internal/models"
)

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req api.ItemCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	item, err := s.service.CreateItem(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	filter, err := parseItemFilter(r)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	run := func() {
		items, err := s.service.ListItems(r.Context(), filter)
		s.writeItems(w, r, items, err)
	}
	if filter.Query != "" {
		s.withLimiter(w, r, s.searchLimiter, "search", run)
		return
	}
	run()
}

func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if _, err := normalizeSearchQuery(query); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	s.withLimiter(w, r, s.searchLimiter, "search", func() {
		items, err := s.service.SearchItems(r.Context(), query)
		s.writeItems(w, r, items, err)
	})
}

func (s *Server) handleItemsByStatus(w http.ResponseWriter, r *http.Request) {
	value, ok := s.pathVarOrBadRequest(w, r, "status")
	if !ok {
		return
	}
	items, err := s.service.ListItemsByStatus(r.Context(), value)
	s.writeItems(w, r, items, err)
}

func (s *Server) handleItemsByPriority(w http.ResponseWriter, r *http.Request) {
	value, ok := s.pathVarOrBadRequest(w, r, "priority")
	if !ok {
		return
	}
	items, err := s.service.ListItemsByPriority(r.Context(), value)
	s.writeItems(w, r, items, err)
}

func (s *Server) handleItemsByTag(w http.ResponseWriter, r *http.Request) {
	value, ok := s.pathVarOrBadRequest(w, r, "tagName")
	if !ok {
		return
	}
	items, err := s.service.ListItemsByTag(r.Context(), value)
	s.writeItems(w, r, items, err)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	item, err := s.service.GetItem(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.ItemUpdateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	item, err := s.service.UpdateItem(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := s.service.DeleteItem(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeItems(w http.ResponseWriter, r *http.Request, items []models.TodoItem, err error) {
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}
