package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/infrastructure/logger"
)

const defaultTimeout = 5 * time.Second

// KanbanClient talks to the external kanban board over its JSON API. The
// board answers either with a bare array or with a {"success", "data"}
// envelope depending on the endpoint; both shapes are handled.
type KanbanClient struct {
	baseURL    string
	projectID  string
	httpClient *http.Client
	logger     *logger.Logger
}

type KanbanClientConfig struct {
	BaseURL   string
	ProjectID string
	Timeout   time.Duration
	Logger    *logger.Logger
}

func NewKanbanClient(cfg KanbanClientConfig) *KanbanClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &KanbanClient{
		baseURL:   cfg.BaseURL,
		projectID: cfg.ProjectID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: cfg.Logger,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// decodeCollection accepts both response shapes: a bare JSON array, or an
// envelope object whose data field holds the array.
func decodeCollection[T any](body []byte) ([]T, error) {
	var direct []T
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed response payload: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("remote reported failure")
	}
	if len(env.Data) == 0 {
		return nil, nil
	}
	var wrapped []T
	if err := json.Unmarshal(env.Data, &wrapped); err != nil {
		return nil, fmt.Errorf("malformed response data: %w", err)
	}
	return wrapped, nil
}

func (c *KanbanClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}

func (c *KanbanClient) Projects(ctx context.Context) ([]ports.RemoteProject, error) {
	body, err := c.get(ctx, "/projects", nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[ports.RemoteProject](body)
}

func (c *KanbanClient) Tasks(ctx context.Context) ([]ports.RemoteTask, error) {
	query := url.Values{}
	if c.projectID != "" {
		query.Set("project_id", c.projectID)
	}
	body, err := c.get(ctx, "/tasks", query)
	if err != nil {
		return nil, err
	}
	return decodeCollection[ports.RemoteTask](body)
}

func (c *KanbanClient) CreateTask(ctx context.Context, task ports.RemoteTask) (*ports.RemoteTask, error) {
	return c.send(ctx, http.MethodPost, "/tasks", task)
}

func (c *KanbanClient) UpdateTask(ctx context.Context, id string, task ports.RemoteTask) (*ports.RemoteTask, error) {
	return c.send(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), task)
}

func (c *KanbanClient) send(ctx context.Context, method, path string, task ports.RemoteTask) (*ports.RemoteTask, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if c.logger != nil {
			c.logger.Warnw("kanban_write_rejected", "method", method, "path", path, "status", resp.StatusCode)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return decodeTask(body)
}

// decodeTask tolerates both a bare task object and an enveloped one.
func decodeTask(body []byte) (*ports.RemoteTask, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		var task ports.RemoteTask
		if err := json.Unmarshal(env.Data, &task); err == nil {
			return &task, nil
		}
	}
	var task ports.RemoteTask
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, fmt.Errorf("malformed response payload: %w", err)
	}
	return &task, nil
}
