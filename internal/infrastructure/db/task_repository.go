package db

import (
	"context"

	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/domain"
	"github.com/augustpm/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{db: db, log: log}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Errorw("task_repo_create_failed", "id", task.ID, "error", err)
		return err
	}
	r.log.Infow("task_repo_create_ok", "id", task.ID, "agent", task.Agent)
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetAll(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.WithContext(ctx).Order("updated_at desc").Find(&tasks).Error; err != nil {
		r.log.Errorw("task_repo_list_failed", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetByAgent(ctx context.Context, agent string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("agent = ?", agent).
		Order("updated_at desc").
		Find(&tasks).Error
	if err != nil {
		r.log.Errorw("task_repo_list_by_agent_failed", "agent", agent, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetByState(ctx context.Context, state domain.TaskState) ([]domain.Task, error) {
	var tasks []domain.Task
	// P0..P3 sort lexically by severity, so priority asc puts critical first.
	err := r.db.WithContext(ctx).
		Where("state = ?", state).
		Order("priority asc, updated_at desc").
		Find(&tasks).Error
	if err != nil {
		r.log.Errorw("task_repo_list_by_state_failed", "state", state, "error", err)
		return nil, err
	}
	return tasks, nil
}

// UpdateStateWithHistory writes the mutated task and its history row in one
// transaction so no reader observes a new state without the matching audit
// entry, or vice versa.
func (r *taskRepository) UpdateStateWithHistory(ctx context.Context, task *domain.Task, entry *domain.HistoryEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		r.log.Errorw("task_repo_update_state_failed", "id", task.ID, "error", err)
		return err
	}
	r.log.Infow("task_repo_update_state_ok", "id", task.ID, "state", task.State)
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		// No orphan history rows.
		return tx.Where("task_id = ?", id).Delete(&domain.HistoryEntry{}).Error
	})
	if err != nil {
		r.log.Errorw("task_repo_delete_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("task_repo_delete_ok", "id", id)
	return nil
}

func (r *taskRepository) CountActiveByAgent(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Agent string
		Count int
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("agent, count(*) as count").
		Where("state NOT IN ?", domain.TerminalStates).
		Group("agent").
		Scan(&rows).Error
	if err != nil {
		r.log.Errorw("task_repo_workload_failed", "error", err)
		return nil, err
	}

	summary := make(map[string]int, len(rows))
	for _, row := range rows {
		summary[row.Agent] = row.Count
	}
	return summary, nil
}

func (r *taskRepository) CountByState(ctx context.Context) (map[domain.TaskState]int, error) {
	var rows []struct {
		State domain.TaskState
		Count int
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("state, count(*) as count").
		Group("state").
		Scan(&rows).Error
	if err != nil {
		r.log.Errorw("task_repo_status_board_failed", "error", err)
		return nil, err
	}

	board := make(map[domain.TaskState]int, len(rows))
	for _, row := range rows {
		board[row.State] = row.Count
	}
	return board, nil
}
