package ports

import (
	"context"

	"github.com/augustpm/backend/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetAll(ctx context.Context) ([]domain.Task, error)
	GetByAgent(ctx context.Context, agent string) ([]domain.Task, error)
	GetByState(ctx context.Context, state domain.TaskState) ([]domain.Task, error)
	// UpdateStateWithHistory persists the mutated task and appends the
	// history row in one transaction; neither is ever visible without the
	// other.
	UpdateStateWithHistory(ctx context.Context, task *domain.Task, entry *domain.HistoryEntry) error
	// Delete removes the task and all of its history rows. Deleting an id
	// that does not exist is a no-op.
	Delete(ctx context.Context, id string) error
	CountActiveByAgent(ctx context.Context) (map[string]int, error)
	CountByState(ctx context.Context) (map[domain.TaskState]int, error)
}

type HistoryRepository interface {
	GetByTask(ctx context.Context, taskID string) ([]domain.HistoryEntry, error)
}
