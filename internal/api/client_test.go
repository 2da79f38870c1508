package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todod/internal/models"
)

func TestHTTPTimeoutFromEnv(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "")
		if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
			t.Fatalf("expected default timeout %v, got %v", defaultHTTPTimeout, got)
		}
	})

	t.Run("duration format", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "45s")
		if got := httpTimeoutFromEnv(); got != 45*time.Second {
			t.Fatalf("expected 45s timeout, got %v", got)
		}
	})

	t.Run("integer seconds", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "25")
		if got := httpTimeoutFromEnv(); got != 25*time.Second {
			t.Fatalf("expected 25s timeout, got %v", got)
		}
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "invalid")
		if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
			t.Fatalf("expected default timeout %v, got %v", defaultHTTPTimeout, got)
		}
	})
}

func TestClientDecodesStructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "todo list still has items", Code: "conflict", ErrorCode: 2103})
	}))
	defer srv.Close()

	err := NewClient(srv.URL).DeleteList(context.Background(), 3, false)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "conflict", apiErr.Code)
	assert.Equal(t, 2103, apiErr.ErrorCode)
	assert.Equal(t, "conflict: todo list still has items", apiErr.Error())
	assert.False(t, IsNotFound(err))
	assert.Equal(t, 2103, ErrorCodeOf(fmt.Errorf("delete: %w", err)))
	assert.Zero(t, ErrorCodeOf(errors.New("plain")))
}

func TestClientErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetItem(context.Background(), 9)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClientSendsRequests(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotQuery = r.Method, r.URL.Path, r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		gotBody = nil
		if len(data) > 0 {
			_ = json.Unmarshal(data, &gotBody)
		}
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/api/todo-lists/4":
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/todo-items/remove-tag":
			_ = json.NewEncoder(w).Encode(ItemTagResponse{ItemID: 5, Changed: false, Tags: []models.Tag{}})
		default:
			_ = json.NewEncoder(w).Encode([]models.TodoItem{{ID: 1, Title: "Milk"}})
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	ctx := context.Background()

	require.NoError(t, client.DeleteList(ctx, 4, true))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "cascade=true", gotQuery)

	items, err := client.SearchItems(ctx, "milk & honey")
	require.NoError(t, err)
	assert.Equal(t, "/api/todo-items/search", gotPath)
	assert.Equal(t, "query=milk+%26+honey", gotQuery)
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0].Title)

	resp, err := client.RemoveTagFromItem(ctx, ItemTagRequest{TodoItemID: 5, TagName: "home"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, float64(5), gotBody["todoItemId"])
	assert.Equal(t, "home", gotBody["tagName"])
	assert.False(t, resp.Changed)

	_, err = client.ItemsByStatus(ctx, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, "/api/todo-items/status/in_progress", gotPath)
}

func TestItemUpdateRequestOmitsUnsetFields(t *testing.T) {
	status := "completed"
	data, err := json.Marshal(ItemUpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"completed"}`, string(data))

	empty := ""
	data, err = json.Marshal(ItemUpdateRequest{DueDate: &empty})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due_date":""}`, string(data))
}
