package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/format/index"
	"github.com/go-git/go-git/v6/plumbing/object"
	"go.uber.org/zap"
)

// Handle is an open repository bound to one project.
//
// Mutating operations hold the handle lock for their full duration. Index and
// ref writes additionally go through publish, so that status reads, which
// never take the handle lock, always load a consistent index/HEAD pair.
type Handle struct {
	target Target
	repo   *git.Repository

	sem   chan struct{}
	state sync.RWMutex
}

func newHandle(target Target, repo *git.Repository) *Handle {
	return &Handle{
		target: target,
		repo:   repo,
		sem:    make(chan struct{}, 1),
	}
}

// Lock acquires the mutation lock, waiting until it is free or ctx is done.
func (h *Handle) Lock(ctx context.Context) error {
	select {
	case h.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to lock repository %s: %w", h.target.ID, ctx.Err())
	}
}

// Unlock releases the mutation lock.
func (h *Handle) Unlock() {
	select {
	case <-h.sem:
	default:
		panic("git: unlock of unlocked repository handle")
	}
}

func (h *Handle) Target() Target {
	return h.target
}

func (h *Handle) publish(fn func() error) error {
	h.state.Lock()
	defer h.state.Unlock()

	return fn()
}

// snapshot is a point-in-time view of the index and HEAD.
type snapshot struct {
	head  *object.Commit // nil while HEAD is unborn
	ref   *plumbing.Reference
	index *index.Index
}

func (h *Handle) snapshot() (*snapshot, error) {
	h.state.RLock()
	defer h.state.RUnlock()

	idx, err := h.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	snap := &snapshot{index: idx}

	ref, err := h.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commit, err := h.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	snap.ref = ref
	snap.head = commit

	return snap, nil
}

// Arena owns the repository handles, keyed by project ID. A released ID is
// never opened again.
type Arena struct {
	mu       sync.Mutex
	handles  map[string]*Handle
	released map[string]struct{}

	logger *zap.Logger
}

func NewArena(logger *zap.Logger) *Arena {
	return &Arena{
		handles:  make(map[string]*Handle),
		released: make(map[string]struct{}),
		logger:   logger,
	}
}

// Acquire returns the handle for the target, opening the repository on first
// access and initialising one when the directory holds none.
func (a *Arena) Acquire(target Target) (*Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.released[target.ID]; ok {
		return nil, fmt.Errorf("%w: repository %s has been released", ErrNotFound, target.ID)
	}

	if h, ok := a.handles[target.ID]; ok {
		if h.target.Dir != target.Dir {
			return nil, fmt.Errorf("%w: repository %s is open at %s", ErrConflict, target.ID, h.target.Dir)
		}
		return h, nil
	}

	repo, err := git.PlainOpen(target.Dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		a.logger.Info("initialising repository",
			zap.String("project", target.ID),
			zap.String("dir", target.Dir))

		if mkErr := os.MkdirAll(target.Dir, 0o755); mkErr != nil {
			return nil, fmt.Errorf("failed to create repository directory: %w", mkErr)
		}
		repo, err = git.PlainInit(target.Dir, false)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", target.ID, err)
	}

	h := newHandle(target, repo)
	a.handles[target.ID] = h

	return h, nil
}

// Release drops the handle of a project once no mutation is in flight. From
// then on Acquire refuses the ID, so a late request cannot bring the
// repository back while its directory is being removed. When ctx ends first
// the handle stays usable.
func (a *Arena) Release(ctx context.Context, id string) error {
	a.mu.Lock()
	h, ok := a.handles[id]
	delete(a.handles, id)
	a.released[id] = struct{}{}
	a.mu.Unlock()

	if !ok {
		return nil
	}

	if err := h.Lock(ctx); err != nil {
		a.mu.Lock()
		delete(a.released, id)
		a.handles[id] = h
		a.mu.Unlock()
		return err
	}
	h.Unlock()

	a.logger.Info("repository released", zap.String("project", id))

	return nil
}
