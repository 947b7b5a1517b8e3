package projects

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apiarycd/gitgate/internal/git"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	projects *Repository

	gitSvc *git.Service

	config Config
	logger *zap.Logger
}

func NewService(projects *Repository, gitSvc *git.Service, config Config, logger *zap.Logger) *Service {
	return &Service{
		projects: projects,

		gitSvc: gitSvc,

		config: config,
		logger: logger,
	}
}

// Create allocates a repository directory for a new project and clones into it
// when a clone URL is given. Without one, the repository is initialised on
// first access.
func (s *Service) Create(ctx context.Context, draft ProjectDraft) (*Project, error) {
	logger := s.logger.With(zap.String("name", draft.Name))

	if _, err := s.projects.GetByName(ctx, draft.Name); err == nil {
		return nil, fmt.Errorf("%w: project with name %q already exists", ErrConflict, draft.Name)
	}

	model := newProjectModel(&draft)
	id := model.ID

	dir, err := filepath.Abs(filepath.Join(s.config.WorkspaceDir, id.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}
	model.Dir = dir

	logger.Info("creating project", zap.String("id", id.String()), zap.String("dir", dir))

	if draft.CloneURL != "" {
		if _, cloneErr := s.gitSvc.Clone(ctx, git.CloneRequest{
			URL:         draft.CloneURL,
			Branch:      draft.Branch,
			Directory:   dir,
			Credentials: draft.Credentials,
		}); cloneErr != nil {
			logger.Error("failed to clone project repository", zap.Error(cloneErr))
			return nil, fmt.Errorf("failed to clone project repository: %w", cloneErr)
		}
	} else if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", mkErr)
	}

	if err := s.projects.Create(ctx, model); err != nil {
		logger.Error("failed to store project", zap.Error(err))
		_ = os.RemoveAll(dir)
		return nil, err
	}

	logger.Info("project created", zap.String("id", id.String()))

	return newProject(model), nil
}

// Get retrieves a project by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		s.logger.Debug("failed to get project", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	return project, nil
}

// Resolve retrieves a project by ID, or by name when the value is not an ID.
func (s *Service) Resolve(ctx context.Context, value string) (*Project, error) {
	if id, err := uuid.Parse(value); err == nil {
		return s.Get(ctx, id)
	}

	return s.projects.GetByName(ctx, value)
}

// List retrieves all projects.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", zap.Error(err))
		return nil, err
	}

	return projects, nil
}

// Delete releases the repository handle of a project, then removes its
// directory and record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	logger := s.logger.With(zap.String("id", id.String()))

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if relErr := s.gitSvc.Release(ctx, id.String()); relErr != nil {
		logger.Error("failed to release repository", zap.Error(relErr))
		return fmt.Errorf("failed to release repository: %w", relErr)
	}

	if rmErr := os.RemoveAll(project.Dir); rmErr != nil {
		logger.Error("failed to remove project directory", zap.Error(rmErr))
		return fmt.Errorf("failed to remove project directory: %w", rmErr)
	}

	if delErr := s.projects.Delete(ctx, id); delErr != nil {
		logger.Error("failed to delete project", zap.Error(delErr))
		return delErr
	}

	logger.Info("project deleted")

	return nil
}
