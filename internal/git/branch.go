package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// CreateBranch creates a local branch at a start point, or at a
// remote-tracking branch which it then tracks.
func (s *Service) CreateBranch(ctx context.Context, target Target, req BranchCreateRequest) (*BranchInfo, error) {
	if err := validateRefName(req.Name); err != nil {
		return nil, err
	}

	h, err := s.lock(ctx, target)
	if err != nil {
		return nil, err
	}
	defer h.Unlock()

	refName := plumbing.NewBranchReferenceName(req.Name)
	if _, refErr := h.repo.Reference(refName, false); refErr == nil {
		return nil, fmt.Errorf("%w: branch %s already exists", ErrValidation, req.Name)
	}

	var (
		start  plumbing.Hash
		remote string
		merge  string
	)
	if req.TrackRemote != "" {
		var ok bool
		remote, merge, ok = strings.Cut(req.TrackRemote, "/")
		if !ok || remote == "" || merge == "" {
			return nil, fmt.Errorf("%w: remote branch must be <remote>/<branch>", ErrValidation)
		}

		ref, refErr := h.repo.Reference(plumbing.NewRemoteReferenceName(remote, merge), true)
		if refErr != nil {
			return nil, fmt.Errorf("%w: remote branch %s", ErrNotFound, req.TrackRemote)
		}
		start = ref.Hash()
	} else {
		rev := req.StartPoint
		if rev == "" {
			rev = "HEAD"
		}
		if start, err = h.resolve(rev); err != nil {
			return nil, err
		}
	}

	err = h.publish(func() error {
		if setErr := h.repo.Storer.SetReference(plumbing.NewHashReference(refName, start)); setErr != nil {
			return setErr
		}
		if remote == "" {
			return nil
		}
		return h.repo.CreateBranch(&config.Branch{
			Name:   req.Name,
			Remote: remote,
			Merge:  plumbing.NewBranchReferenceName(merge),
		})
	})
	if err != nil {
		s.logger.Error("failed to create branch", zap.String("project", target.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create branch %s: %w", req.Name, err)
	}

	s.logger.Info("branch created",
		zap.String("project", target.ID),
		zap.String("branch", req.Name),
		zap.String("hash", start.String()))

	return &BranchInfo{
		Name:   req.Name,
		ID:     start.String(),
		Remote: remote,
		Merge:  merge,
	}, nil
}

// ListBranches lists the local branches sorted by name.
func (s *Service) ListBranches(_ context.Context, target Target) ([]BranchInfo, error) {
	h, err := s.arena.Acquire(target)
	if err != nil {
		return nil, err
	}

	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}

	branches, err := h.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	var infos []BranchInfo
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		info := BranchInfo{
			Name:    ref.Name().Short(),
			ID:      ref.Hash().String(),
			Current: snap.ref != nil && snap.ref.Name() == ref.Name(),
		}
		if cfg, cfgErr := h.repo.Branch(info.Name); cfgErr == nil {
			info.Remote = cfg.Remote
			info.Merge = cfg.Merge.Short()
		}
		infos = append(infos, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos, nil
}

// Checkout switches the working tree to a local branch. Uncommitted changes to
// tracked files, and untracked files the branch would write over, abort the
// checkout with a ConflictError.
func (s *Service) Checkout(ctx context.Context, target Target, name string) (*BranchInfo, error) {
	defer observe(opCheckout)()

	h, err := s.lock(ctx, target)
	if err != nil {
		return nil, err
	}
	defer h.Unlock()

	refName := plumbing.NewBranchReferenceName(name)
	ref, err := h.repo.Reference(refName, true)
	if err != nil {
		return nil, fmt.Errorf("%w: branch %s", ErrNotFound, name)
	}

	status, v, err := h.status("")
	if err != nil {
		return nil, err
	}
	if !status.IsClean() {
		paths := lo.Uniq(lo.Flatten([][]string{
			status.Added, status.Changed, status.Removed, status.Modified, status.Missing,
		}))
		sort.Strings(paths)
		return nil, &ConflictError{Paths: paths}
	}

	commit, err := h.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", ref.Hash(), err)
	}
	files, err := headFiles(commit)
	if err != nil {
		return nil, err
	}
	if paths := overwritten(status.Untracked, v.head, files); len(paths) > 0 {
		return nil, &ConflictError{Paths: paths}
	}

	wt, err := h.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	err = h.publish(func() error {
		if checkoutErr := wt.Checkout(&git.CheckoutOptions{Branch: refName}); checkoutErr != nil {
			return checkoutErr
		}
		return h.clearMergeHead()
	})
	if err != nil {
		s.logger.Error("failed to checkout", zap.String("project", target.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to checkout %s: %w", name, err)
	}

	s.logger.Info("branch checked out",
		zap.String("project", target.ID),
		zap.String("branch", name))

	return &BranchInfo{
		Name:    name,
		ID:      ref.Hash().String(),
		Current: true,
	}, nil
}

// DeleteBranch removes a local branch and its tracking configuration.
func (s *Service) DeleteBranch(ctx context.Context, target Target, name string) error {
	h, err := s.lock(ctx, target)
	if err != nil {
		return err
	}
	defer h.Unlock()

	refName := plumbing.NewBranchReferenceName(name)
	if _, refErr := h.repo.Reference(refName, false); refErr != nil {
		return fmt.Errorf("%w: branch %s", ErrNotFound, name)
	}

	head, err := h.repo.Reference(plumbing.HEAD, false)
	if err == nil && head.Type() == plumbing.SymbolicReference && head.Target() == refName {
		return fmt.Errorf("%w: cannot delete the checked out branch %s", ErrValidation, name)
	}

	err = h.publish(func() error {
		if rmErr := h.repo.Storer.RemoveReference(refName); rmErr != nil {
			return rmErr
		}
		if cfgErr := h.repo.DeleteBranch(name); cfgErr != nil && !errors.Is(cfgErr, git.ErrBranchNotFound) {
			return cfgErr
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}

	s.logger.Info("branch deleted",
		zap.String("project", target.ID),
		zap.String("branch", name))

	return nil
}

func validateRefName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case strings.ContainsAny(name, " ~^:?*[\\"),
		strings.Contains(name, ".."),
		strings.Contains(name, "@{"),
		strings.HasPrefix(name, "-"),
		strings.HasPrefix(name, "/"),
		strings.HasSuffix(name, "/"),
		strings.HasSuffix(name, ".lock"):
		return fmt.Errorf("%w: invalid name %q", ErrValidation, name)
	}

	return nil
}
