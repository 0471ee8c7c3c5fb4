package services

import (
	"testing"

	"github.com/augustpm/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapRemoteStatus(t *testing.T) {
	cases := map[string]domain.TaskState{
		"backlog":     domain.StateBacklog,
		"todo":        domain.StatePlanned,
		"inprogress":  domain.StateInProgress,
		"in_progress": domain.StateInProgress,
		"In Progress": domain.StateInProgress,
		"inreview":    domain.StateReview,
		"DONE":        domain.StateDone,
		"blocked":     domain.StateBlocked,
		"cancelled":   domain.StateCancelled,
		"icebox":      domain.StateBacklog, // unknown defaults to backlog
		"":            domain.StateBacklog,
	}
	for status, want := range cases {
		assert.Equal(t, want, mapRemoteStatus(status), "status %q", status)
	}
}

func TestMapRemoteExecutor(t *testing.T) {
	assert.Equal(t, "engineer", mapRemoteExecutor("CODEX", "august"))
	assert.Equal(t, "qa", mapRemoteExecutor("Shield", "august"))
	assert.Equal(t, "engineer", mapRemoteExecutor("Swift", "august"))
	assert.Equal(t, "docs", mapRemoteExecutor("Docs", "august"))
	assert.Equal(t, "august", mapRemoteExecutor("SomeoneNew", "august"), "unknown executor takes the fallback")

	// Matching is exact: the table keys are the remote spellings.
	assert.Equal(t, "august", mapRemoteExecutor("codex", "august"))
}

func TestLowerState(t *testing.T) {
	assert.Equal(t, "in_progress", lowerState(domain.StateInProgress))
	assert.Equal(t, "done", lowerState(domain.StateDone))
}
