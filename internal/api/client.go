package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"todod/internal/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "TODOD_HTTP_TIMEOUT"
)

// Client is a simple HTTP client for the todod API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/api/info", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateList(ctx context.Context, req ListCreateRequest) (models.TodoList, error) {
	var resp models.TodoList
	err := c.do(ctx, http.MethodPost, "/api/todo-lists", nil, req, &resp)
	return resp, err
}

func (c *Client) ListLists(ctx context.Context) ([]models.TodoList, error) {
	var resp []models.TodoList
	err := c.do(ctx, http.MethodGet, "/api/todo-lists", nil, nil, &resp)
	return resp, err
}

func (c *Client) GetList(ctx context.Context, id int64) (models.TodoList, error) {
	var resp models.TodoList
	err := c.do(ctx, http.MethodGet, "/api/todo-lists/"+idPath(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) DeleteList(ctx context.Context, id int64, cascade bool) error {
	query := url.Values{}
	if cascade {
		query.Set("cascade", "true")
	}
	return c.do(ctx, http.MethodDelete, "/api/todo-lists/"+idPath(id), query, nil, nil)
}

func (c *Client) CreateItem(ctx context.Context, req ItemCreateRequest) (models.TodoItem, error) {
	var resp models.TodoItem
	err := c.do(ctx, http.MethodPost, "/api/todo-items", nil, req, &resp)
	return resp, err
}

func (c *Client) GetItem(ctx context.Context, id int64) (models.TodoItem, error) {
	var resp models.TodoItem
	err := c.do(ctx, http.MethodGet, "/api/todo-items/"+idPath(id), nil, nil, &resp)
	return resp, err
}

// ListItems lists items. Supported query keys: list_id, status, priority, tag, query.
func (c *Client) ListItems(ctx context.Context, query url.Values) ([]models.TodoItem, error) {
	var resp []models.TodoItem
	err := c.do(ctx, http.MethodGet, "/api/todo-items", query, nil, &resp)
	return resp, err
}

func (c *Client) SearchItems(ctx context.Context, text string) ([]models.TodoItem, error) {
	var resp []models.TodoItem
	err := c.do(ctx, http.MethodGet, "/api/todo-items/search", url.Values{"query": {text}}, nil, &resp)
	return resp, err
}

func (c *Client) ItemsByStatus(ctx context.Context, status string) ([]models.TodoItem, error) {
	var resp []models.TodoItem
	err := c.do(ctx, http.MethodGet, "/api/todo-items/status/"+url.PathEscape(status), nil, nil, &resp)
	return resp, err
}

func (c *Client) ItemsByPriority(ctx context.Context, priority string) ([]models.TodoItem, error) {
	var resp []models.TodoItem
	err := c.do(ctx, http.MethodGet, "/api/todo-items/priority/"+url.PathEscape(priority), nil, nil, &resp)
	return resp, err
}

func (c *Client) ItemsByTag(ctx context.Context, tagName string) ([]models.TodoItem, error) {
	var resp []models.TodoItem
	err := c.do(ctx, http.MethodGet, "/api/todo-items/tag/"+url.PathEscape(tagName), nil, nil, &resp)
	return resp, err
}

func (c *Client) UpdateItem(ctx context.Context, id int64, req ItemUpdateRequest) (models.TodoItem, error) {
	var resp models.TodoItem
	err := c.do(ctx, http.MethodPut, "/api/todo-items/"+idPath(id), nil, req, &resp)
	return resp, err
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/todo-items/"+idPath(id), nil, nil, nil)
}

func (c *Client) ListItemTags(ctx context.Context, id int64) ([]models.Tag, error) {
	var resp []models.Tag
	err := c.do(ctx, http.MethodGet, "/api/todo-items/"+idPath(id)+"/tags", nil, nil, &resp)
	return resp, err
}

func (c *Client) SyncItemTags(ctx context.Context, id int64, req TagSyncRequest) (TagSyncResponse, error) {
	var resp TagSyncResponse
	err := c.do(ctx, http.MethodPut, "/api/todo-items/"+idPath(id)+"/tags", nil, req, &resp)
	return resp, err
}

func (c *Client) CreateTag(ctx context.Context, req TagCreateRequest) (models.Tag, error) {
	var resp models.Tag
	err := c.do(ctx, http.MethodPost, "/api/tags", nil, req, &resp)
	return resp, err
}

func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var resp []models.Tag
	err := c.do(ctx, http.MethodGet, "/api/tags", nil, nil, &resp)
	return resp, err
}

func (c *Client) AddTagToItem(ctx context.Context, req ItemTagRequest) (ItemTagResponse, error) {
	var resp ItemTagResponse
	err := c.do(ctx, http.MethodPost, "/api/todo-items/add-tag", nil, req, &resp)
	return resp, err
}

func (c *Client) RemoveTagFromItem(ctx context.Context, req ItemTagRequest) (ItemTagResponse, error) {
	var resp ItemTagResponse
	err := c.do(ctx, http.MethodDelete, "/api/todo-items/remove-tag", nil, req, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Code
		apiErr.ErrorCode = errResp.ErrorCode
		apiErr.Message = errResp.Error
		return apiErr
	}
	apiErr.Message = "api error: " + resp.Status
	return apiErr
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
