package git

import (
	"context"

	"go.uber.org/zap"
)

type Service struct {
	arena *Arena

	config Config
	logger *zap.Logger
}

// NewService creates a new Service.
func NewService(arena *Arena, config Config, logger *zap.Logger) *Service {
	return &Service{
		arena: arena,

		config: config,
		logger: logger,
	}
}

// Release drops the repository handle of a project, waiting for an in-flight
// mutation to finish.
func (s *Service) Release(ctx context.Context, id string) error {
	return s.arena.Release(ctx, id)
}

// lock acquires the handle of target and its mutation lock. The caller must
// unlock the returned handle.
func (s *Service) lock(ctx context.Context, target Target) (*Handle, error) {
	h, err := s.arena.Acquire(target)
	if err != nil {
		s.logger.Error("failed to open repository", zap.String("project", target.ID), zap.Error(err))
		return nil, err
	}

	if err := h.Lock(ctx); err != nil {
		return nil, err
	}

	return h, nil
}
