package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/domain"
	"github.com/augustpm/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type taskService struct {
	repo    ports.TaskRepository
	history ports.HistoryRepository
	logger  *logger.Logger
}

type TaskServiceConfig struct {
	Repository ports.TaskRepository
	History    ports.HistoryRepository
	Logger     *logger.Logger
}

func NewTaskService(cfg TaskServiceConfig) ports.TaskService {
	return &taskService{
		repo:    cfg.Repository,
		history: cfg.History,
		logger:  cfg.Logger,
	}
}

// newTaskID returns a fresh opaque token, e.g. TASK-3F2A9C01.
func newTaskID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("TASK-%s", strings.ToUpper(hex[:8]))
}

func (s *taskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, ErrTaskInvalidInput
	}
	if !domain.ValidAgent(input.Agent) {
		s.logger.Warnw("task_create_unknown_agent", "agent", input.Agent)
		return nil, ErrUnknownAgent
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.DefaultPriority
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	now := time.Now()
	task := &domain.Task{
		ID:          newTaskID(),
		Title:       input.Title,
		Description: input.Description,
		Agent:       strings.ToLower(input.Agent),
		State:       domain.InitialState,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		ParentTask:  input.ParentTask,
		Tags:        input.Tags,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Infow("task_create_success", "id", task.ID, "agent", task.Agent, "priority", task.Priority)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// UpdateState records the transition in the history log and persists the new
// state, atomically. There is no transition guard: any enumerated state is
// accepted from any other.
func (s *taskService) UpdateState(ctx context.Context, id string, state domain.TaskState) (*domain.Task, error) {
	if !state.Valid() {
		return nil, ErrInvalidState
	}

	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldState := task.State
	now := time.Now()
	task.State = state
	task.UpdatedAt = now

	entry := &domain.HistoryEntry{
		TaskID:    task.ID,
		Field:     "state",
		OldValue:  string(oldState),
		NewValue:  string(state),
		ChangedAt: now,
	}

	if err := s.repo.UpdateStateWithHistory(ctx, task, entry); err != nil {
		return nil, fmt.Errorf("update task state: %w", err)
	}

	s.logger.Infow("task_state_updated", "id", task.ID, "from", oldState, "to", state)
	return task, nil
}

func (s *taskService) ListAll(ctx context.Context) ([]domain.Task, error) {
	return s.repo.GetAll(ctx)
}

func (s *taskService) ListByAgent(ctx context.Context, agent string) ([]domain.Task, error) {
	return s.repo.GetByAgent(ctx, strings.ToLower(agent))
}

func (s *taskService) ListByState(ctx context.Context, state domain.TaskState) ([]domain.Task, error) {
	if !state.Valid() {
		return nil, ErrInvalidState
	}
	return s.repo.GetByState(ctx, state)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.logger.Infow("task_delete_success", "id", id)
	return nil
}

func (s *taskService) History(ctx context.Context, id string) ([]domain.HistoryEntry, error) {
	// Not-found is not surfaced here: a deleted task legitimately has an
	// empty history.
	return s.history.GetByTask(ctx, id)
}

func (s *taskService) WorkloadSummary(ctx context.Context) (map[string]int, error) {
	return s.repo.CountActiveByAgent(ctx)
}

func (s *taskService) StatusBoard(ctx context.Context) (map[domain.TaskState]int, error) {
	return s.repo.CountByState(ctx)
}
