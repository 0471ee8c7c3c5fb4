package services

import (
	"context"
	"sort"
	"time"

	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/domain"
	"github.com/augustpm/backend/internal/infrastructure/logger"
)

// reportService computes read-only views over the store at call time. No
// caching: correctness only depends on the store being consistent at the
// instant of the read.
type reportService struct {
	tasks  ports.TaskService
	logger *logger.Logger
}

func NewReportService(tasks ports.TaskService, logger *logger.Logger) ports.ReportService {
	return &reportService{tasks: tasks, logger: logger}
}

func (s *reportService) Workload(ctx context.Context) ([]ports.AgentWorkload, error) {
	summary, err := s.tasks.WorkloadSummary(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.AgentWorkload, 0, len(summary))
	for agentID, count := range summary {
		w := ports.AgentWorkload{Agent: agentID, ActiveTasks: count}
		if a, ok := domain.GetAgent(agentID); ok {
			w.AgentName = a.Name
			w.AgentEmoji = a.Emoji
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Agent < out[j].Agent })
	return out, nil
}

func (s *reportService) Standup(ctx context.Context) ([]ports.AgentStandup, error) {
	all, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byAgent := make(map[string]*ports.AgentStandup)
	for _, task := range all {
		entry, ok := byAgent[task.Agent]
		if !ok {
			entry = &ports.AgentStandup{Agent: task.Agent}
			if a, found := domain.GetAgent(task.Agent); found {
				entry.AgentName = a.Name
				entry.AgentEmoji = a.Emoji
			}
			byAgent[task.Agent] = entry
		}
		switch task.State {
		case domain.StateInProgress:
			entry.InProgress = append(entry.InProgress, task)
		case domain.StateReview:
			entry.InReview = append(entry.InReview, task)
		case domain.StateBlocked:
			entry.Blocked = append(entry.Blocked, task)
		case domain.StatePlanned:
			entry.Planned = append(entry.Planned, task)
		}
	}

	out := make([]ports.AgentStandup, 0, len(byAgent))
	for _, entry := range byAgent {
		if len(entry.InProgress)+len(entry.InReview)+len(entry.Blocked)+len(entry.Planned) == 0 {
			continue
		}
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Agent < out[j].Agent })
	return out, nil
}

// RecentlyBlocked returns BLOCKED tasks whose last touch is after since, for
// the blocked-task alert.
func (s *reportService) RecentlyBlocked(ctx context.Context, since time.Time) ([]domain.Task, error) {
	blocked, err := s.tasks.ListByState(ctx, domain.StateBlocked)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(blocked))
	for _, task := range blocked {
		if task.UpdatedAt.After(since) {
			out = append(out, task)
		}
	}
	return out, nil
}

// StaleCritical returns P0 tasks that have sat IN_PROGRESS without a touch
// for longer than olderThan.
func (s *reportService) StaleCritical(ctx context.Context, olderThan time.Duration) ([]domain.Task, error) {
	inProgress, err := s.tasks.ListByState(ctx, domain.StateInProgress)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(-olderThan)
	out := make([]domain.Task, 0)
	for _, task := range inProgress {
		if task.Priority == domain.PriorityP0 && task.UpdatedAt.Before(cutoff) {
			out = append(out, task)
		}
	}
	return out, nil
}
