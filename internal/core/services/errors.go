package services

import "errors"

// Task errors
var (
	ErrTaskNotFound     = errors.New("task: not found")
	ErrTaskInvalidInput = errors.New("task: invalid input")
	ErrUnknownAgent     = errors.New("task: unknown agent")
	ErrInvalidState     = errors.New("task: state outside enumeration")
	ErrInvalidPriority  = errors.New("task: priority outside enumeration")
)
