package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindPush  Kind = "push"
	KindFetch Kind = "fetch"
)

type Status string

const (
	StatusPending   Status = "pending"   // Task has not started
	StatusRunning   Status = "running"   // Task is in progress
	StatusCompleted Status = "completed" // Task finished, Result holds the outcome
	StatusFailed    Status = "failed"    // Task failed, Error holds the reason
)

// Func is the work of a task. Its result is stored as JSON.
type Func func(ctx context.Context) (any, error)

type TaskDraft struct {
	// References
	ProjectID uuid.UUID

	Kind Kind
}

type Task struct {
	TaskDraft

	ID uuid.UUID

	Status      Status
	Result      json.RawMessage
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Task) MarkRunning(startedAt time.Time) {
	t.Status = StatusRunning
	t.StartedAt = &startedAt
}

func (t *Task) MarkCompleted(completedAt time.Time, result json.RawMessage) {
	t.Status = StatusCompleted
	t.Result = result
	t.CompletedAt = &completedAt
}

func (t *Task) MarkFailed(completedAt time.Time, err error) {
	t.Status = StatusFailed
	t.Error = err.Error()
	t.CompletedAt = &completedAt
}

// Done reports whether the task has finished.
func (t *Task) Done() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}
