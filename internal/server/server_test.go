package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"todod/internal/api"
)

func TestListenAddrRemoteGuard(t *testing.T) {
	t.Run("allows loopback", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		addr, err := ListenAddr("http://127.0.0.1:7333")
		if err != nil {
			t.Fatalf("expected loopback to be allowed, got error: %v", err)
		}
		if addr != "127.0.0.1:7333" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("allows localhost host:port", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		addr, err := ListenAddr("localhost:7333")
		if err != nil {
			t.Fatalf("expected localhost to be allowed, got error: %v", err)
		}
		if addr != "localhost:7333" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("blocks non-loopback by default", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		if _, err := ListenAddr("http://0.0.0.0:7333"); err == nil {
			t.Fatal("expected error for non-loopback listen host")
		}
	})

	t.Run("allows non-loopback when explicitly enabled", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "true")
		addr, err := ListenAddr("http://0.0.0.0:7333")
		if err != nil {
			t.Fatalf("expected allow-remote to permit host, got error: %v", err)
		}
		if addr != "0.0.0.0:7333" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("rejects empty url", func(t *testing.T) {
		if _, err := ListenAddr(""); err == nil {
			t.Fatal("expected error for empty api url")
		}
	})
}

func TestSearchLimiterRejectsWhenSaturated(t *testing.T) {
	srv := newTestServerWithOptions(t, Options{SearchConcurrency: 1})
	srv.searchLimiter <- struct{}{}

	w := doRequest(t, srv, http.MethodGet, "/api/todo-items/search?query=milk", nil)
	expectErrorCode(t, w, http.StatusTooManyRequests, ErrCodeResourceExhausted)

	<-srv.searchLimiter
	w = doRequest(t, srv, http.MethodGet, "/api/todo-items/search?query=milk", nil)
	expectStatus(t, w, http.StatusOK)
}

func TestRouteNotFoundAndMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/nope", nil)
	expectErrorCode(t, w, http.StatusNotFound, ErrCodeNotFound)

	w = doRequest(t, srv, http.MethodPatch, "/api/todo-lists", nil)
	expectErrorCode(t, w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestSearchPathIsNotAnItemID(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/todo-items/search?query=x", nil)
	expectStatus(t, w, http.StatusOK)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.withRequestLogging(srv.routes())

	t.Run("echoes caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/todo-lists/abc", nil)
		req.Header.Set(requestIDHeader, "req-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get(requestIDHeader); got != "req-123" {
			t.Fatalf("expected echoed request id, got %q", got)
		}
		var resp api.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		if resp.ErrorCode != ErrCodeInvalidID {
			t.Fatalf("expected invalid id error, got %+v", resp)
		}
	})

	t.Run("generates id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get(requestIDHeader); len(got) != 36 {
			t.Fatalf("expected generated uuid request id, got %q", got)
		}
	})
}

func TestInfoReportsCounts(t *testing.T) {
	srv := newTestServerWithOptions(t, Options{DBPath: "/tmp/todod.db"})
	list := createList(t, srv, "Inbox")
	createItem(t, srv, map[string]any{"list_id": list.ID, "title": "a"})
	createItem(t, srv, map[string]any{"list_id": list.ID, "title": "b"})

	w := doRequest(t, srv, http.MethodGet, "/api/info", nil)
	expectStatus(t, w, http.StatusOK)
	info := decodeBody[api.InfoResponse](t, w)
	if info.DBPath != "/tmp/todod.db" || info.TotalLists != 1 || info.TotalItems != 2 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.ItemCounts["pending"] != 2 || info.ItemCounts["completed"] != 0 {
		t.Fatalf("unexpected item counts: %+v", info.ItemCounts)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}

func TestPathVarDecoding(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	got, err := pathVar(mux.SetURLVars(req, map[string]string{"tagName": "work%2Furgent"}), "tagName")
	if err != nil || got != "work/urgent" {
		t.Fatalf("expected decoded name, got %q (%v)", got, err)
	}

	_, err = pathVar(mux.SetURLVars(req, map[string]string{"tagName": "bad%zz"}), "tagName")
	if status := httpStatusFromError(err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", status, err)
	}
	if code := errorNumericCode(http.StatusBadRequest, err); code != ErrCodeInvalidArgument {
		t.Fatalf("expected error_code %d, got %d", ErrCodeInvalidArgument, code)
	}
}
