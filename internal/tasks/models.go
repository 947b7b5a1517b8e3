package tasks

import (
	"encoding/json"
	"time"

	"github.com/apiarycd/gitgate/internal/storage"
	"github.com/google/uuid"
)

// taskModel is the stored form of a task.
type taskModel struct {
	storage.BaseEntity

	// References
	ProjectID uuid.UUID `json:"project_id"`

	Kind        Kind            `json:"kind"`
	Status      Status          `json:"status"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error"`
	StartedAt   *time.Time      `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at"`
}

func newTaskModel(draft *TaskDraft) *taskModel {
	if draft == nil {
		return nil
	}

	return &taskModel{
		BaseEntity: storage.NewBaseEntity(),
		ProjectID: draft.ProjectID,
		Kind:      draft.Kind,
		Status:    StatusPending,
	}
}

func newTaskUpdateModel(source *taskModel, task *Task) *taskModel {
	return &taskModel{
		BaseEntity:  source.Touched(),
		ProjectID:   source.ProjectID,
		Kind:        source.Kind,
		Status:      task.Status,
		Result:      task.Result,
		Error:       task.Error,
		StartedAt:   task.StartedAt,
		CompletedAt: task.CompletedAt,
	}
}

func newTask(model *taskModel) *Task {
	if model == nil {
		return nil
	}

	return &Task{
		TaskDraft: TaskDraft{
			ProjectID: model.ProjectID,
			Kind:      model.Kind,
		},
		ID:          model.ID,
		Status:      model.Status,
		Result:      model.Result,
		Error:       model.Error,
		StartedAt:   model.StartedAt,
		CompletedAt: model.CompletedAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
