package ports

import (
	"context"
	"time"

	"github.com/augustpm/backend/internal/domain"
)

type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	UpdateState(ctx context.Context, id string, state domain.TaskState) (*domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
	ListByAgent(ctx context.Context, agent string) ([]domain.Task, error)
	ListByState(ctx context.Context, state domain.TaskState) ([]domain.Task, error)
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]domain.HistoryEntry, error)
	WorkloadSummary(ctx context.Context) (map[string]int, error)
	StatusBoard(ctx context.Context) (map[domain.TaskState]int, error)
}

type CreateTaskInput struct {
	Title       string
	Description string
	Agent       string
	Priority    domain.TaskPriority
	ParentTask  *string
	Tags        []string
}

type SyncService interface {
	// SyncFromRemote pulls the remote board into the local store. It never
	// returns an error: remote failure degrades to a zero-activity result.
	SyncFromRemote(ctx context.Context) PullResult
	// SyncToRemote pushes every local task outward. Not idempotent on the
	// remote side: repeated calls re-push everything.
	SyncToRemote(ctx context.Context) PushResult
	SyncStatus(ctx context.Context) SyncStatus
}

type PullResult struct {
	Fetched int `json:"fetched"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

type PushResult struct {
	Fetched int `json:"fetched"`
	Pushed  int `json:"pushed"`
	Errors  int `json:"errors"`
}

type SyncStatus struct {
	Online      bool            `json:"online"`
	RemoteTasks int             `json:"remote_task_count"`
	LocalTasks  int             `json:"local_task_count"`
	Projects    []RemoteProject `json:"projects"`
	Error       string          `json:"error,omitempty"`
}

type ReportService interface {
	Workload(ctx context.Context) ([]AgentWorkload, error)
	Standup(ctx context.Context) ([]AgentStandup, error)
	RecentlyBlocked(ctx context.Context, since time.Time) ([]domain.Task, error)
	StaleCritical(ctx context.Context, olderThan time.Duration) ([]domain.Task, error)
}

type AgentWorkload struct {
	Agent       string `json:"agent"`
	AgentName   string `json:"agent_name"`
	AgentEmoji  string `json:"agent_emoji"`
	ActiveTasks int    `json:"active_tasks"`
}

type AgentStandup struct {
	Agent      string        `json:"agent"`
	AgentName  string        `json:"agent_name"`
	AgentEmoji string        `json:"agent_emoji"`
	InProgress []domain.Task `json:"in_progress"`
	InReview   []domain.Task `json:"in_review"`
	Blocked    []domain.Task `json:"blocked"`
	Planned    []domain.Task `json:"planned"`
}
