package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/augustpm/backend/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *KanbanClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewKanbanClient(KanbanClientConfig{
		BaseURL:   server.URL,
		ProjectID: "proj-1",
		Timeout:   2 * time.Second,
	})
}

func TestTasksBareArrayEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "proj-1", r.URL.Query().Get("project_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"title":"one","status":"todo"},{"title":"two","status":"done","executor":"CODEX"}]`))
	}))

	tasks, err := client.Tasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "one", tasks[0].Title)
	assert.Equal(t, "CODEX", tasks[1].Executor)
}

func TestTasksSuccessDataEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"title":"wrapped","status":"inreview"}]}`))
	}))

	tasks, err := client.Tasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "wrapped", tasks[0].Title)
	assert.Equal(t, "inreview", tasks[0].Status)
}

func TestTasksEnvelopeFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))

	_, err := client.Tasks(context.Background())
	assert.Error(t, err)
}

func TestTasksNon2xx(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.Tasks(context.Background())
	assert.Error(t, err)
}

func TestTasksMalformedPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<!doctype html>`))
	}))

	_, err := client.Tasks(context.Background())
	assert.Error(t, err)
}

func TestTasksTimeout(t *testing.T) {
	client := NewKanbanClient(KanbanClientConfig{
		BaseURL: startSlowServer(t, 500*time.Millisecond),
		Timeout: 50 * time.Millisecond,
	})

	start := time.Now()
	_, err := client.Tasks(context.Background())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 400*time.Millisecond, "timeout bounds the call")
}

func startSlowServer(t *testing.T, delay time.Duration) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestProjects(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"p1","name":"Lovemail","git_repo_path":"/src/lovemail"}]}`))
	}))

	projects, err := client.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Lovemail", projects[0].Name)
}

func TestCreateTask(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got ports.RemoteTask
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "push", got.Title)
		assert.Equal(t, "in_progress", got.Status)

		got.ID = "remote-42"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(got)
	}))

	created, err := client.CreateTask(context.Background(), ports.RemoteTask{
		Title:    "push",
		Status:   "in_progress",
		Agent:    "engineer",
		Priority: "P2",
	})
	require.NoError(t, err)
	assert.Equal(t, "remote-42", created.ID)
}

func TestCreateTaskRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusUnprocessableEntity)
	}))

	_, err := client.CreateTask(context.Background(), ports.RemoteTask{Title: "nope"})
	assert.Error(t, err)
}

func TestUpdateTask(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tasks/remote-7", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"remote-7","title":"renamed"}}`))
	}))

	updated, err := client.UpdateTask(context.Background(), "remote-7", ports.RemoteTask{Title: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
}
