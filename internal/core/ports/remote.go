package ports

import "context"

// RemoteTask is the wire shape of a task on the remote kanban board. Pulls
// read status/executor; pushes send agent/status/priority.
type RemoteTask struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	Executor    string `json:"executor,omitempty"`
	Agent       string `json:"agent,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

type RemoteProject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GitRepoPath string `json:"git_repo_path,omitempty"`
}

// KanbanClient talks to the external kanban service. Every call is bounded
// by the client's timeout; errors are plain network/protocol faults for the
// sync engine to absorb.
type KanbanClient interface {
	Projects(ctx context.Context) ([]RemoteProject, error)
	Tasks(ctx context.Context) ([]RemoteTask, error)
	CreateTask(ctx context.Context, task RemoteTask) (*RemoteTask, error)
	UpdateTask(ctx context.Context, id string, task RemoteTask) (*RemoteTask, error)
}
