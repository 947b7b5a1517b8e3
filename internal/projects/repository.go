package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/apiarycd/gitgate/pkg/badgerfx"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type Repository struct {
	db       *badger.DB
	projects *badgerfx.Repository[*projectModel]
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db:       db,
		projects: badgerfx.NewRepository[*projectModel](func() *projectModel { return new(projectModel) }),
	}
}

// Create stores a new project. Names are unique.
func (r *Repository) Create(_ context.Context, model *projectModel) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, getErr := txn.Get([]byte(keyByName(model.Name))); getErr == nil {
			return fmt.Errorf("%w: project with name %q already exists", ErrConflict, model.Name)
		} else if !errors.Is(getErr, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check name uniqueness: %w", getErr)
		}

		return r.projects.Write(txn, model)
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Project, error) {
	var model *projectModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.projects.Read(txn, keyByID(id))
		model = found
		return err
	})
	if errors.Is(err, badgerfx.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return newProject(model), nil
}

// GetByName retrieves a project by its name.
func (r *Repository) GetByName(_ context.Context, name string) (*Project, error) {
	var model *projectModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.projects.ReadByIndex(txn, keyByName(name))
		model = found
		return err
	})
	if errors.Is(err, badgerfx.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return newProject(model), nil
}

// List retrieves all projects ordered by ID, which is creation order.
func (r *Repository) List(_ context.Context) ([]Project, error) {
	var models []*projectModel

	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		models, err = r.projects.List(txn, prefixByID, badger.DefaultIteratorOptions)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]Project, 0, len(models))
	for _, m := range models {
		projects = append(projects, *newProject(m))
	}

	return projects, nil
}

// Delete removes a project and its indexes.
func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return r.projects.Delete(txn, keyByID(id))
	})
	if errors.Is(err, badgerfx.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
