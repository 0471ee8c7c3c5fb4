package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ==================== ENUMS ====================

// TaskState is the workflow position of a task. Any state may follow any
// other; there is no transition guard.
type TaskState string

const (
	StateBacklog    TaskState = "BACKLOG"
	StatePlanned    TaskState = "PLANNED"
	StateInProgress TaskState = "IN_PROGRESS"
	StateReview     TaskState = "REVIEW"
	StateDone       TaskState = "DONE"
	StateBlocked    TaskState = "BLOCKED"
	StateCancelled  TaskState = "CANCELLED"
)

// InitialState is the state every task is created in.
const InitialState = StateBacklog

var stateMeta = map[TaskState]struct {
	emoji  string
	color  string
	weight int
}{
	StateBacklog:    {"🆕", "#6B7280", 0},
	StatePlanned:    {"📋", "#3B82F6", 1},
	StateInProgress: {"🏃", "#FBBF24", 2},
	StateReview:     {"👀", "#F97316", 3},
	StateDone:       {"✅", "#10B981", 4},
	StateBlocked:    {"❌", "#EF4444", 5},
	StateCancelled:  {"🗑️", "#4B5563", 6},
}

func (s TaskState) Valid() bool {
	_, ok := stateMeta[s]
	return ok
}

func (s TaskState) Emoji() string { return stateMeta[s].emoji }

func (s TaskState) Color() string { return stateMeta[s].color }

// SortWeight orders states for display, backlog first.
func (s TaskState) SortWeight() int { return stateMeta[s].weight }

// Terminal reports whether a task in this state counts as finished work.
// BLOCKED is recoverable and therefore not terminal.
func (s TaskState) Terminal() bool {
	return s == StateDone || s == StateCancelled
}

// TerminalStates is the set excluded from workload counts.
var TerminalStates = []TaskState{StateDone, StateCancelled}

// ParseTaskState rejects anything outside the closed enumeration. Feeding it
// free text is a programming error on the caller's side, never coerced.
func ParseTaskState(s string) (TaskState, error) {
	state := TaskState(s)
	if !state.Valid() {
		return "", fmt.Errorf("unknown task state %q", s)
	}
	return state, nil
}

// TaskPriority is an axis independent from state, display semantics only.
type TaskPriority string

const (
	PriorityP0 TaskPriority = "P0"
	PriorityP1 TaskPriority = "P1"
	PriorityP2 TaskPriority = "P2"
	PriorityP3 TaskPriority = "P3"
)

// DefaultPriority is applied when the caller does not pick one.
const DefaultPriority = PriorityP2

var priorityMeta = map[TaskPriority]struct {
	emoji  string
	label  string
	weight int
}{
	PriorityP0: {"🔴", "P0 - Critical", 0},
	PriorityP1: {"🟠", "P1 - High", 1},
	PriorityP2: {"🟡", "P2 - Medium", 2},
	PriorityP3: {"🟢", "P3 - Low", 3},
}

func (p TaskPriority) Valid() bool {
	_, ok := priorityMeta[p]
	return ok
}

func (p TaskPriority) Emoji() string { return priorityMeta[p].emoji }

func (p TaskPriority) Label() string { return priorityMeta[p].label }

// SortWeight orders priorities by severity, P0 first.
func (p TaskPriority) SortWeight() int { return priorityMeta[p].weight }

func ParseTaskPriority(s string) (TaskPriority, error) {
	priority := TaskPriority(s)
	if !priority.Valid() {
		return "", fmt.Errorf("unknown task priority %q", s)
	}
	return priority, nil
}

// ==================== LIST VALUE TYPE ====================

// StringList stores an ordered label list in a single text column as JSON.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StringList: invalid type")
	}
	if len(bytes) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// ==================== ENTITIES ====================

// Task is the unit of record. ID is assigned once at creation and never
// reused; all mutation goes through the store so that updated_at and the
// history log stay truthful.
type Task struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`

	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Agent       string       `gorm:"size:50;not null;index" json:"agent"`
	State       TaskState    `gorm:"size:20;not null;index" json:"state"`
	Priority    TaskPriority `gorm:"size:4;not null" json:"priority"`

	// ParentTask is a weak reference: the parent may be deleted without
	// cascading, dangling values are tolerated.
	ParentTask *string    `gorm:"size:32" json:"parent_task,omitempty"`
	Tags       StringList `gorm:"type:text" json:"tags"`
}

// HistoryEntry is one immutable audit row for one field change on one task.
// Rows are only ever removed together with their owning task. Ordering is
// changed_at, ties broken by the autoincrement id.
type HistoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    string    `gorm:"size:32;not null;index" json:"task_id"`
	Field     string    `gorm:"size:50;not null" json:"field"`
	OldValue  string    `gorm:"size:255" json:"old_value"`
	NewValue  string    `gorm:"size:255" json:"new_value"`
	ChangedAt time.Time `gorm:"index" json:"changed_at"`
}

func (HistoryEntry) TableName() string {
	return "task_history"
}
