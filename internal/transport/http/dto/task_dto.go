package dto

import (
	"time"

	"github.com/augustpm/backend/internal/domain"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Agent       string   `json:"agent"`
	Priority    string   `json:"priority,omitempty"`
	ParentTask  *string  `json:"parent_task,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (r *CreateTaskRequest) Validate() []string {
	var errors []string

	if r.Title == "" {
		errors = append(errors, "title is required")
	}

	if r.Agent == "" {
		errors = append(errors, "agent is required")
	} else if !domain.ValidAgent(r.Agent) {
		errors = append(errors, "agent is not a known team member")
	}

	if r.Priority != "" {
		if _, err := domain.ParseTaskPriority(r.Priority); err != nil {
			errors = append(errors, "priority must be one of: P0, P1, P2, P3")
		}
	}

	return errors
}

func (r *CreateTaskRequest) GetPriority() domain.TaskPriority {
	if r.Priority == "" {
		return domain.DefaultPriority
	}
	return domain.TaskPriority(r.Priority)
}

type UpdateStateRequest struct {
	State string `json:"state"`
}

type TaskResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Agent         string    `json:"agent"`
	State         string    `json:"state"`
	StateEmoji    string    `json:"state_emoji"`
	Priority      string    `json:"priority"`
	PriorityLabel string    `json:"priority_label"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ParentTask    *string   `json:"parent_task,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
}

func TaskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Agent:         task.Agent,
		State:         string(task.State),
		StateEmoji:    task.State.Emoji(),
		Priority:      string(task.Priority),
		PriorityLabel: task.Priority.Label(),
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
		ParentTask:    task.ParentTask,
		Tags:          task.Tags,
	}
}

func TasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToResponse(&tasks[i]))
	}
	return out
}
