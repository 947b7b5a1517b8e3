package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport"
	"go.uber.org/zap"
)

const defaultRemote = "origin"

// Clone initialises a repository in req.Directory from a remote and checks out
// a local branch tracking the remote's default branch, or req.Branch.
func (s *Service) Clone(ctx context.Context, req CloneRequest) (*BranchInfo, error) {
	defer observe(opClone)()

	if req.URL == "" || req.Directory == "" {
		return nil, fmt.Errorf("%w: url and directory are required", ErrValidation)
	}

	s.logger.Info("cloning repository",
		zap.String("url", req.URL),
		zap.String("directory", req.Directory),
		zap.String("branch", req.Branch))

	if _, statErr := os.Stat(req.Directory); statErr == nil {
		return nil, fmt.Errorf("%w: directory %s already exists", ErrValidation, req.Directory)
	}

	auth, err := authMethod(req.URL, req.Credentials)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	info, err := s.clone(ctx, req, auth)
	if err != nil {
		s.logger.Error("failed to clone repository", zap.Error(err))
		_ = os.RemoveAll(req.Directory)
		return nil, err
	}

	s.logger.Info("repository cloned successfully",
		zap.String("url", req.URL),
		zap.String("directory", req.Directory),
		zap.String("branch", info.Name))

	return info, nil
}

func (s *Service) clone(ctx context.Context, req CloneRequest, auth transport.AuthMethod) (*BranchInfo, error) {
	repo, err := git.PlainInit(req.Directory, false)
	if err != nil {
		return nil, fmt.Errorf("failed to init repository: %w", err)
	}

	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: defaultRemote,
		URLs: []string{req.URL},
	}); err != nil {
		return nil, fmt.Errorf("failed to add remote: %w", err)
	}

	h := newHandle(Target{ID: req.Directory, Dir: req.Directory}, repo)
	if err := h.fetch(ctx, defaultRemote, auth); err != nil {
		return nil, err
	}

	branch := req.Branch
	if branch == "" {
		if branch, err = defaultBranch(ctx, repo, auth); err != nil {
			return nil, err
		}
	}
	if branch == "" {
		// empty remote: keep the unborn HEAD
		return &BranchInfo{}, nil
	}

	tracking, err := repo.Reference(plumbing.NewRemoteReferenceName(defaultRemote, branch), true)
	if err != nil {
		return nil, fmt.Errorf("%w: remote branch %s", ErrNotFound, branch)
	}

	local := plumbing.NewBranchReferenceName(branch)
	if err := repo.Storer.SetReference(plumbing.NewHashReference(local, tracking.Hash())); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	if err := repo.CreateBranch(&config.Branch{
		Name:   branch,
		Remote: defaultRemote,
		Merge:  local,
	}); err != nil {
		return nil, fmt.Errorf("failed to configure branch: %w", err)
	}
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, local)); err != nil {
		return nil, fmt.Errorf("failed to set HEAD: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: tracking.Hash(), Mode: git.HardReset}); err != nil {
		return nil, fmt.Errorf("failed to check out %s: %w", branch, err)
	}

	return &BranchInfo{
		Name:    branch,
		ID:      tracking.Hash().String(),
		Current: true,
		Remote:  defaultRemote,
		Merge:   branch,
	}, nil
}

// defaultBranch finds the branch the remote HEAD points at, falling back to
// master or main. An empty remote has no default branch.
func defaultBranch(ctx context.Context, repo *git.Repository, auth transport.AuthMethod) (string, error) {
	remote, err := repo.Remote(defaultRemote)
	if err != nil {
		return "", fmt.Errorf("%w: remote %s", ErrNotFound, defaultRemote)
	}

	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: auth})
	if err != nil {
		if errors.Is(err, transport.ErrEmptyRemoteRepository) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}

	var (
		head  plumbing.Hash
		heads []*plumbing.Reference
	)
	for _, ref := range refs {
		switch {
		case ref.Name() == plumbing.HEAD && ref.Type() == plumbing.SymbolicReference:
			return ref.Target().Short(), nil
		case ref.Name() == plumbing.HEAD:
			head = ref.Hash()
		case ref.Name().IsBranch():
			heads = append(heads, ref)
		}
	}
	sort.Slice(heads, func(i, j int) bool { return heads[i].Name() < heads[j].Name() })

	// without a symref, prefer well-known names among the branches at HEAD
	for _, candidate := range []string{"master", "main"} {
		for _, ref := range heads {
			if ref.Name().Short() == candidate && (head.IsZero() || ref.Hash() == head) {
				return candidate, nil
			}
		}
	}
	for _, ref := range heads {
		if ref.Hash() == head {
			return ref.Name().Short(), nil
		}
	}
	if len(heads) > 0 {
		return heads[0].Name().Short(), nil
	}

	return "", nil
}
