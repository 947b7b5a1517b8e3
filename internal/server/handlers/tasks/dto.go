package tasks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskResponse represents the response payload for a task.
type TaskResponse struct {
	ID uuid.UUID `json:"Id"`

	// References
	ProjectID uuid.UUID `json:"ProjectId"`

	Kind   string `json:"Kind"`
	Status string `json:"Status"`
	// Result is the push result or the fetched remote branch
	Result      json.RawMessage `json:"Result,omitempty"    swaggertype:"object"`
	Error       string          `json:"Error,omitempty"`
	StartedAt   *time.Time      `json:"StartedAt,omitempty"`
	CompletedAt *time.Time      `json:"CompletedAt,omitempty"`
	Location    string          `json:"Location"`

	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`
}
