package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/apiarycd/gitgate/pkg/badgerfx"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	prefix = "task:"

	prefixByID      = prefix + "id:"
	prefixByProject = prefix + "project:"
)

type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create creates a new pending task.
func (r *Repository) Create(_ context.Context, draft *TaskDraft) (*Task, error) {
	model := newTaskModel(draft)

	err := r.db.Update(func(txn *badger.Txn) error {
		if err := r.write(txn, model); err != nil {
			return err
		}

		// Project index `task:project:<project_id>:<unix_nano>`
		projectData, err := json.Marshal(model.ID)
		if err != nil {
			return fmt.Errorf("failed to marshal task ID: %w", err)
		}
		if setErr := txn.Set(r.getProjectKey(model), projectData); setErr != nil {
			return fmt.Errorf("failed to set project index: %w", setErr)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return newTask(model), nil
}

// GetByID retrieves a task by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Task, error) {
	var task *taskModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.getByID(txn, id)
		if err == nil {
			task = found
		}

		return err
	})

	return newTask(task), err
}

// Update updates an existing task.
func (r *Repository) Update(_ context.Context, id uuid.UUID, updater func(*Task) error) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		old, err := r.getByID(txn, id)
		if err != nil {
			return fmt.Errorf("failed to get task before update: %w", err)
		}

		task := newTask(old)
		if updErr := updater(task); updErr != nil {
			return fmt.Errorf("failed to update task: %w", updErr)
		}

		return r.write(txn, newTaskUpdateModel(old, task))
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// ListByProject retrieves the tasks of a project, newest first.
func (r *Repository) ListByProject(_ context.Context, projectID uuid.UUID) ([]Task, error) {
	var tasks []Task

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := r.getProjectPrefix(projectID)
		for it.Seek(append(prefix, badgerfx.SeekEnd)); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			if err := item.Value(func(val []byte) error {
				var taskID uuid.UUID
				if err := json.Unmarshal(val, &taskID); err != nil {
					return fmt.Errorf("failed to unmarshal task ID: %w", err)
				}

				task, err := r.getByID(txn, taskID)
				if err != nil {
					return err
				}

				tasks = append(tasks, *newTask(task))

				return nil
			}); err != nil {
				return fmt.Errorf("failed to unmarshal task: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return tasks, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (r *Repository) write(txn *badger.Txn, task *taskModel) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if setErr := txn.Set(r.getKey(task.ID), data); setErr != nil {
		return fmt.Errorf("failed to store task: %w", setErr)
	}

	return nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*taskModel, error) {
	item, err := txn.Get(r.getKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	var task taskModel
	if valErr := item.Value(func(val []byte) error { return json.Unmarshal(val, &task) }); valErr != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", valErr)
	}

	return &task, nil
}

// getKey generates the key for storing a task.
func (r *Repository) getKey(id uuid.UUID) []byte {
	return []byte(prefixByID + id.String())
}

// getProjectPrefix generates the prefix for project-specific tasks.
func (r *Repository) getProjectPrefix(projectID uuid.UUID) []byte {
	return []byte(prefixByProject + projectID.String() + ":")
}

func (r *Repository) getProjectKey(task *taskModel) []byte {
	return append(r.getProjectPrefix(task.ProjectID), []byte(strconv.FormatInt(task.CreatedAt.UnixNano(), 10))...)
}
