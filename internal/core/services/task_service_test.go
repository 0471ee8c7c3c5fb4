package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/augustpm/backend/internal/config"
	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/domain"
	"github.com/augustpm/backend/internal/infrastructure/db"
	"github.com/augustpm/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTaskService(t *testing.T) ports.TaskService {
	t.Helper()

	database, err := db.NewSQLiteConnection(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "tasks.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(database))
	t.Cleanup(func() { _ = db.Close(database) })

	log := logger.NewNop()
	return NewTaskService(TaskServiceConfig{
		Repository: db.NewTaskRepository(database, log),
		History:    db.NewHistoryRepository(database, log),
		Logger:     log,
	})
}

func TestTaskServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := newTestTaskService(t)

	t.Run("defaults and round trip", func(t *testing.T) {
		created, err := svc.Create(ctx, ports.CreateTaskInput{
			Title:       "Fix onboarding flow",
			Description: "Users drop off at step 3",
			Agent:       "designer",
			Tags:        []string{"ux", "funnel"},
		})
		require.NoError(t, err)

		assert.Regexp(t, `^TASK-[0-9A-F]{8}$`, created.ID)
		assert.Equal(t, domain.InitialState, created.State)
		assert.Equal(t, domain.DefaultPriority, created.Priority)
		assert.False(t, created.UpdatedAt.Before(created.CreatedAt))

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Description, got.Description)
		assert.Equal(t, created.Agent, got.Agent)
		assert.Equal(t, created.State, got.State)
		assert.Equal(t, created.Priority, got.Priority)
		assert.Equal(t, domain.StringList{"ux", "funnel"}, got.Tags)
	})

	t.Run("ids are unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 50; i++ {
			task, err := svc.Create(ctx, ports.CreateTaskInput{Title: "dup check", Agent: "qa"})
			require.NoError(t, err)
			_, dup := seen[task.ID]
			require.False(t, dup, "id %s produced twice", task.ID)
			seen[task.ID] = struct{}{}
		}
	})

	t.Run("unknown agent rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, ports.CreateTaskInput{Title: "x", Agent: "contractor"})
		assert.True(t, errors.Is(err, ErrUnknownAgent))
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, ports.CreateTaskInput{Agent: "qa"})
		assert.True(t, errors.Is(err, ErrTaskInvalidInput))
	})
}

func TestTaskServiceUpdateState(t *testing.T) {
	ctx := context.Background()
	svc := newTestTaskService(t)

	task, err := svc.Create(ctx, ports.CreateTaskInput{Title: "Ship v2", Agent: "engineer"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := svc.UpdateState(ctx, task.ID, domain.StateInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StateInProgress, updated.State)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))

	entries, err := svc.History(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1, "exactly one history row per transition")
	assert.Equal(t, task.ID, entries[0].TaskID)
	assert.Equal(t, "state", entries[0].Field)
	assert.Equal(t, "BACKLOG", entries[0].OldValue)
	assert.Equal(t, "IN_PROGRESS", entries[0].NewValue)

	t.Run("no guard between states", func(t *testing.T) {
		// DONE back to BACKLOG is allowed: operators correct mis-filed tasks.
		_, err := svc.UpdateState(ctx, task.ID, domain.StateDone)
		require.NoError(t, err)
		reopened, err := svc.UpdateState(ctx, task.ID, domain.StateBacklog)
		require.NoError(t, err)
		assert.Equal(t, domain.StateBacklog, reopened.State)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.UpdateState(ctx, "TASK-DOESNOTEX", domain.StateDone)
		assert.True(t, errors.Is(err, ErrTaskNotFound))

		entries, err := svc.History(ctx, "TASK-DOESNOTEX")
		require.NoError(t, err)
		assert.Empty(t, entries, "failed transition leaves no history")
	})

	t.Run("invalid state fails fast", func(t *testing.T) {
		_, err := svc.UpdateState(ctx, task.ID, domain.TaskState("SHIPPING"))
		assert.True(t, errors.Is(err, ErrInvalidState))
	})
}

func TestTaskServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestTaskService(t)

	task, err := svc.Create(ctx, ports.CreateTaskInput{Title: "Throwaway", Agent: "qa"})
	require.NoError(t, err)
	_, err = svc.UpdateState(ctx, task.ID, domain.StateCancelled)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, task.ID))

	_, err = svc.Get(ctx, task.ID)
	assert.True(t, errors.Is(err, ErrTaskNotFound))

	entries, err := svc.History(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, svc.Delete(ctx, task.ID), "second delete is a no-op")
}

func TestTaskServiceWorkloadSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestTaskService(t)

	first, err := svc.Create(ctx, ports.CreateTaskInput{Title: "one", Agent: "engineer"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ports.CreateTaskInput{Title: "two", Agent: "engineer"})
	require.NoError(t, err)
	_, err = svc.UpdateState(ctx, first.ID, domain.StateInProgress)
	require.NoError(t, err)

	summary, err := svc.WorkloadSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary["engineer"])

	// Finishing a task decrements the count.
	_, err = svc.UpdateState(ctx, first.ID, domain.StateDone)
	require.NoError(t, err)
	summary, err = svc.WorkloadSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary["engineer"])

	// The entry disappears entirely once nothing active remains.
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	for _, task := range all {
		if !task.State.Terminal() {
			_, err = svc.UpdateState(ctx, task.ID, domain.StateCancelled)
			require.NoError(t, err)
		}
	}
	summary, err = svc.WorkloadSummary(ctx)
	require.NoError(t, err)
	_, present := summary["engineer"]
	assert.False(t, present)
}

func TestTaskServiceStatusBoard(t *testing.T) {
	ctx := context.Background()
	svc := newTestTaskService(t)

	a, err := svc.Create(ctx, ports.CreateTaskInput{Title: "a", Agent: "qa"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ports.CreateTaskInput{Title: "b", Agent: "qa"})
	require.NoError(t, err)
	_, err = svc.UpdateState(ctx, a.ID, domain.StateReview)
	require.NoError(t, err)

	board, err := svc.StatusBoard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, board[domain.StateBacklog])
	assert.Equal(t, 1, board[domain.StateReview])
}
