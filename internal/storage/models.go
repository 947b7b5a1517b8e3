package storage

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for all storage entities.
type BaseEntity struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBaseEntity stamps a new entity with a time-ordered ID.
func NewBaseEntity() BaseEntity {
	now := time.Now()

	return BaseEntity{
		ID:        uuid.Must(uuid.NewV7()),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touched returns a copy with UpdatedAt set to now.
func (e BaseEntity) Touched() BaseEntity {
	e.UpdatedAt = time.Now()

	return e
}
