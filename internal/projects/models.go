package projects

import (
	"encoding/json"

	"github.com/apiarycd/gitgate/internal/storage"
	"github.com/apiarycd/gitgate/pkg/badgerfx"
	"github.com/google/uuid"
)

const (
	prefix = "project:"

	prefixByID   = prefix + "id:"
	prefixByName = prefix + "name:"
)

// projectModel is the stored form of a project.
type projectModel struct {
	storage.BaseEntity

	Name     string `json:"name"`
	CloneURL string `json:"clone_url"`
	Dir      string `json:"dir"`
}

func newProjectModel(draft *ProjectDraft) *projectModel {
	return &projectModel{
		BaseEntity: storage.NewBaseEntity(),
		Name:       draft.Name,
		CloneURL:   draft.CloneURL,
	}
}

func newProject(model *projectModel) *Project {
	if model == nil {
		return nil
	}

	return &Project{
		ID:        model.ID,
		Name:      model.Name,
		CloneURL:  model.CloneURL,
		Dir:       model.Dir,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func keyByID(id uuid.UUID) string {
	return prefixByID + id.String()
}

func keyByName(name string) string {
	return prefixByName + name
}

// StorageKey implements badgerfx.Entity.
func (m *projectModel) StorageKey() string {
	return keyByID(m.ID)
}

// StorageIndexes implements badgerfx.Entity.
func (m *projectModel) StorageIndexes() []string {
	return []string{keyByName(m.Name)}
}

// MarshalStorage implements badgerfx.Entity.
func (m *projectModel) MarshalStorage() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalStorage implements badgerfx.Entity.
func (m *projectModel) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, m)
}

var _ badgerfx.Entity = (*projectModel)(nil)
