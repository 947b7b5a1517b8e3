package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	tasks *Repository

	wg sync.WaitGroup

	config Config
	logger *zap.Logger
}

func NewService(tasks *Repository, config Config, logger *zap.Logger) *Service {
	return &Service{
		tasks: tasks,

		config: config,
		logger: logger,
	}
}

// Start persists a pending task and runs fn in the background.
func (s *Service) Start(ctx context.Context, draft TaskDraft, fn Func) (*Task, error) {
	logger := s.logger.With(
		zap.String("project_id", draft.ProjectID.String()),
		zap.String("kind", string(draft.Kind)))

	task, err := s.tasks.Create(ctx, &draft)
	if err != nil {
		logger.Error("failed to create task", zap.Error(err))
		return nil, err
	}

	logger.Info("task created", zap.String("id", task.ID.String()))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(task.ID, fn, logger.With(zap.String("id", task.ID.String())))
	}()

	return task, nil
}

func (s *Service) run(id uuid.UUID, fn Func, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	if err := s.tasks.Update(ctx, id, func(t *Task) error {
		t.MarkRunning(time.Now())
		return nil
	}); err != nil {
		logger.Error("failed to mark task running", zap.Error(err))
		return
	}

	result, runErr := fn(ctx)

	var payload json.RawMessage
	if runErr == nil && result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			runErr = fmt.Errorf("failed to marshal task result: %w", err)
		} else {
			payload = data
		}
	}

	if err := s.tasks.Update(context.Background(), id, func(t *Task) error {
		if runErr != nil {
			t.MarkFailed(time.Now(), runErr)
			return nil
		}
		t.MarkCompleted(time.Now(), payload)
		return nil
	}); err != nil {
		logger.Error("failed to store task outcome", zap.Error(err))
		return
	}

	if runErr != nil {
		logger.Warn("task failed", zap.Error(runErr))
		return
	}

	logger.Info("task completed")
}

// Get retrieves a task by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		s.logger.Debug("failed to get task", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	return task, nil
}

// ListByProject retrieves the tasks of a project, newest first.
func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]Task, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("failed to list tasks", zap.Error(err))
		return nil, err
	}

	return tasks, nil
}

// Wait blocks until every running task has finished or ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("tasks still running: %w", ctx.Err())
	}
}
