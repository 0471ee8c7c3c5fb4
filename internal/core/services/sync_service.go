package services

import (
	"context"
	"fmt"

	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/domain"
	"github.com/augustpm/backend/internal/infrastructure/logger"
)

// syncService reconciles the local store with a remote kanban board. It runs
// unattended: every remote-call site degrades to counters, never to a
// propagated error.
type syncService struct {
	client        ports.KanbanClient
	tasks         ports.TaskService
	fallbackAgent string
	logger        *logger.Logger
}

type SyncServiceConfig struct {
	Client        ports.KanbanClient
	Tasks         ports.TaskService
	FallbackAgent string
	Logger        *logger.Logger
}

func NewSyncService(cfg SyncServiceConfig) ports.SyncService {
	fallback := cfg.FallbackAgent
	if fallback == "" {
		fallback = "engineer"
	}
	return &syncService{
		client:        cfg.Client,
		tasks:         cfg.Tasks,
		fallbackAgent: fallback,
		logger:        cfg.Logger,
	}
}

func (s *syncService) SyncFromRemote(ctx context.Context) ports.PullResult {
	var res ports.PullResult

	remoteTasks, err := s.client.Tasks(ctx)
	if err != nil {
		// Unreachable board is an expected condition, reported as zero
		// activity.
		s.logger.Warnw("sync_pull_fetch_failed", "error", err)
		return res
	}
	res.Fetched = len(remoteTasks)

	// Dedup is by verbatim title against everything known locally. Distinct
	// remote tasks sharing a title collapse into one local task.
	knownTitles := make(map[string]struct{})
	local, err := s.tasks.ListAll(ctx)
	if err != nil {
		s.logger.Errorw("sync_pull_local_list_failed", "error", err)
		res.Errors = res.Fetched
		return res
	}
	for _, t := range local {
		knownTitles[t.Title] = struct{}{}
	}

	for _, rt := range remoteTasks {
		created, err := s.importRemoteTask(ctx, rt, knownTitles)
		if err != nil {
			s.logger.Warnw("sync_pull_task_failed", "title", rt.Title, "error", err)
			res.Errors++
			continue
		}
		if created {
			res.Created++
		} else {
			res.Skipped++
		}
	}

	s.logger.Infow("sync_pull_done",
		"fetched", res.Fetched, "created", res.Created,
		"skipped", res.Skipped, "errors", res.Errors)
	return res
}

// importRemoteTask maps one remote task into the store. Returns false with a
// nil error when the task was skipped as a duplicate.
func (s *syncService) importRemoteTask(ctx context.Context, rt ports.RemoteTask, knownTitles map[string]struct{}) (bool, error) {
	title := rt.Title
	if title == "" {
		title = "Untitled"
	}
	if _, exists := knownTitles[title]; exists {
		return false, nil
	}

	state := mapRemoteStatus(rt.Status)
	agent := mapRemoteExecutor(rt.Executor, s.fallbackAgent)

	task, err := s.tasks.Create(ctx, ports.CreateTaskInput{
		Title:       title,
		Description: rt.Description,
		Agent:       agent,
		Priority:    domain.DefaultPriority,
	})
	if err != nil {
		return false, fmt.Errorf("create local task: %w", err)
	}

	if state != domain.InitialState {
		if _, err := s.tasks.UpdateState(ctx, task.ID, state); err != nil {
			return false, fmt.Errorf("transition imported task: %w", err)
		}
	}

	knownTitles[title] = struct{}{}
	return true, nil
}

func (s *syncService) SyncToRemote(ctx context.Context) ports.PushResult {
	var res ports.PushResult

	local, err := s.tasks.ListAll(ctx)
	if err != nil {
		s.logger.Errorw("sync_push_local_list_failed", "error", err)
		res.Errors++
		return res
	}
	res.Fetched = len(local)

	for _, task := range local {
		// No already-pushed bookkeeping: every call re-pushes the full set
		// and the remote side accumulates duplicates. Callers must expect it.
		remote := ports.RemoteTask{
			Title:       task.Title,
			Description: task.Description,
			Agent:       task.Agent,
			Status:      lowerState(task.State),
			Priority:    string(task.Priority),
		}
		if _, err := s.client.CreateTask(ctx, remote); err != nil {
			s.logger.Warnw("sync_push_task_failed", "id", task.ID, "error", err)
			res.Errors++
			continue
		}
		res.Pushed++
	}

	s.logger.Infow("sync_push_done", "fetched", res.Fetched, "pushed", res.Pushed, "errors", res.Errors)
	return res
}

func (s *syncService) SyncStatus(ctx context.Context) ports.SyncStatus {
	projects, err := s.client.Projects(ctx)
	if err != nil {
		s.logger.Warnw("sync_status_probe_failed", "error", err)
		return ports.SyncStatus{Online: false, Error: err.Error()}
	}

	status := ports.SyncStatus{
		Online:   len(projects) > 0,
		Projects: projects,
	}

	if remoteTasks, err := s.client.Tasks(ctx); err == nil {
		status.RemoteTasks = len(remoteTasks)
	}
	if local, err := s.tasks.ListAll(ctx); err == nil {
		status.LocalTasks = len(local)
	}

	return status
}
