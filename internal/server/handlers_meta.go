package server

import (
	"net/http"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.Info(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp.DBPath = s.dbPath
	s.writeJSON(w, http.StatusOK, resp)
}
