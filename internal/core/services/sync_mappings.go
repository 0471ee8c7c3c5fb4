package services

import (
	"strings"

	"github.com/augustpm/backend/internal/domain"
)

// Remote vocabulary tables.

var remoteStatusToState = map[string]domain.TaskState{
	"backlog":     domain.StateBacklog,
	"todo":        domain.StatePlanned,
	"inprogress":  domain.StateInProgress,
	"in_progress": domain.StateInProgress,
	"in progress": domain.StateInProgress,
	"inreview":    domain.StateReview,
	"review":      domain.StateReview,
	"done":        domain.StateDone,
	"blocked":     domain.StateBlocked,
	"cancelled":   domain.StateCancelled,
}

var remoteExecutorToAgent = map[string]string{
	"CODEX":  "engineer",
	"Shield": "qa",
	"Swift":  "engineer",
	"Docs":   "docs",
}

// mapRemoteStatus translates a remote column name to a local state.
// Unrecognized statuses land in the backlog.
func mapRemoteStatus(status string) domain.TaskState {
	if state, ok := remoteStatusToState[strings.ToLower(status)]; ok {
		return state
	}
	return domain.StateBacklog
}

// lowerState renders a local state in the remote board's vocabulary.
func lowerState(s domain.TaskState) string {
	return strings.ToLower(string(s))
}

// mapRemoteExecutor translates a remote executor to a local agent id,
// falling back to the configured default for unknown executors.
func mapRemoteExecutor(executor, fallback string) string {
	if agent, ok := remoteExecutorToAgent[executor]; ok {
		return agent
	}
	return fallback
}
