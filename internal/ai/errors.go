package ai

import "errors"

// ErrUnknownTask is returned when a task list names a task no behavior knows.
var ErrUnknownTask = errors.New("unknown task")
