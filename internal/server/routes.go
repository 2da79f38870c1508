package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// routes registers handlers in match order. Fixed todo-items paths come before
// /todo-items/{id} so that e.g. "search" is never read as an item id. Matching
// runs on the escaped path; handlers decode variables with pathVar.
func (s *Server) routes() http.Handler {
	router := mux.NewRouter().UseEncodedPath()
	router.NotFoundHandler = http.HandlerFunc(s.handleRouteNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	// Health check.
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	router.HandleFunc("/api/info", s.handleInfo).Methods(http.MethodGet)

	// Lists.
	router.HandleFunc("/api/todo-lists", s.handleCreateList).Methods(http.MethodPost)
	router.HandleFunc("/api/todo-lists", s.handleListLists).Methods(http.MethodGet)
	router.HandleFunc("/api/todo-lists/{id}", s.handleGetList).Methods(http.MethodGet)
	router.HandleFunc("/api/todo-lists/{id}", s.handleDeleteList).Methods(http.MethodDelete)

	// Items collection and queries.
	router.HandleFunc("/api/todo-items", s.handleCreateItem).Methods(http.MethodPost)
	router.HandleFunc("/api/todo-items", s.handleListItems).Methods(http.MethodGet)
	router.HandleFunc("/api/todo-items/search", s.handleSearchItems).Methods(http.MethodGet)
	router.HandleFunc("/api/todo-items/status/{status}", s.handleItemsByStatus).Methods(http.MethodGet)
	router.HandleFunc("/api/todo-items/priority/{priority}", s.handleItemsByPriority).Methods(http.MethodGet)
	router.HandleFunc("/api/todo-items/tag/{tagName}", s.handleItemsByTag).Methods(http.MethodGet)

	// Tag links by name.
	router.HandleFunc("/api/todo-items/add-tag", s.handleAddTagToItem).Methods(http.MethodPost)
	router.HandleFunc("/api/todo-items/remove-tag", s.handleRemoveTagFromItem).Methods(http.MethodDelete)

	// Single item.
	router.HandleFunc("/api/todo-items/{id}", s.handleGetItem).Methods(http.MethodGet)
	router.HandleFunc("/api/todo-items/{id}", s.handleUpdateItem).Methods(http.MethodPut)
	router.HandleFunc("/api/todo-items/{id}", s.handleDeleteItem).Methods(http.MethodDelete)
	router.HandleFunc("/api/todo-items/{id}/tags", s.handleListItemTags).Methods(http.MethodGet)
	router.HandleFunc("/api/todo-items/{id}/tags", s.handleSyncItemTags).Methods(http.MethodPut)

	// Tags.
	router.HandleFunc("/api/tags", s.handleCreateTag).Methods(http.MethodPost)
	router.HandleFunc("/api/tags", s.handleListTags).Methods(http.MethodGet)

	return router
}

func (s *Server) handleRouteNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(fmt.Errorf("route not found"), ErrCodeNotFound))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeErrorReq(w, r, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
}
