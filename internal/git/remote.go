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
	"go.uber.org/zap"
)

// ListRemotes lists the configured remotes sorted by name.
func (s *Service) ListRemotes(_ context.Context, target Target) ([]RemoteInfo, error) {
	h, err := s.arena.Acquire(target)
	if err != nil {
		return nil, err
	}

	remotes, err := h.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}

	infos := make([]RemoteInfo, 0, len(remotes))
	for _, r := range remotes {
		infos = append(infos, RemoteInfo{
			Name: r.Config().Name,
			URLs: r.Config().URLs,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos, nil
}

// GetRemote returns a configured remote.
func (s *Service) GetRemote(_ context.Context, target Target, name string) (*RemoteInfo, error) {
	h, err := s.arena.Acquire(target)
	if err != nil {
		return nil, err
	}

	remote, err := h.repo.Remote(name)
	if err != nil {
		return nil, fmt.Errorf("%w: remote %s", ErrNotFound, name)
	}

	return &RemoteInfo{Name: name, URLs: remote.Config().URLs}, nil
}

// AddRemote configures a new remote with the default fetch refspec.
func (s *Service) AddRemote(ctx context.Context, target Target, name, remoteURL string) (*RemoteInfo, error) {
	if err := validateRefName(name); err != nil {
		return nil, err
	}
	if remoteURL == "" {
		return nil, fmt.Errorf("%w: remote URL is required", ErrValidation)
	}

	h, err := s.lock(ctx, target)
	if err != nil {
		return nil, err
	}
	defer h.Unlock()

	cfg := &config.RemoteConfig{
		Name: name,
		URLs: []string{remoteURL},
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if _, err := h.repo.CreateRemote(cfg); err != nil {
		if errors.Is(err, git.ErrRemoteExists) {
			return nil, fmt.Errorf("%w: remote %s already exists", ErrValidation, name)
		}
		return nil, fmt.Errorf("failed to add remote %s: %w", name, err)
	}

	s.logger.Info("remote added",
		zap.String("project", target.ID),
		zap.String("remote", name),
		zap.String("url", remoteURL))

	return &RemoteInfo{Name: name, URLs: cfg.URLs}, nil
}

// ListRemoteBranches lists the remote-tracking branches of a remote.
func (s *Service) ListRemoteBranches(_ context.Context, target Target, remote string) ([]RemoteRef, error) {
	h, err := s.arena.Acquire(target)
	if err != nil {
		return nil, err
	}

	remoteURL, err := h.remoteURL(remote)
	if err != nil {
		return nil, err
	}

	tracked, err := h.trackedBranches()
	if err != nil {
		return nil, err
	}

	refs, err := h.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}

	prefix := plumbing.NewRemoteReferenceName(remote, "").String()
	var out []RemoteRef
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !ref.Name().IsRemote() || !strings.HasPrefix(name, prefix) || ref.Type() != plumbing.HashReference {
			return nil
		}
		branch := strings.TrimPrefix(name, prefix)
		out = append(out, RemoteRef{
			Remote:        remote,
			Name:          branch,
			ID:            ref.Hash().String(),
			URI:           remoteURL,
			TrackedBranch: tracked[remote+"/"+branch],
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// GetRemoteBranch returns one remote-tracking branch.
func (s *Service) GetRemoteBranch(_ context.Context, target Target, remote, branch string) (*RemoteRef, error) {
	h, err := s.arena.Acquire(target)
	if err != nil {
		return nil, err
	}

	return h.remoteRef(remote, branch)
}

func (h *Handle) remoteRef(remote, branch string) (*RemoteRef, error) {
	remoteURL, err := h.remoteURL(remote)
	if err != nil {
		return nil, err
	}

	ref, err := h.repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	if err != nil {
		return nil, fmt.Errorf("%w: remote branch %s/%s", ErrNotFound, remote, branch)
	}

	tracked, err := h.trackedBranches()
	if err != nil {
		return nil, err
	}

	return &RemoteRef{
		Remote:        remote,
		Name:          branch,
		ID:            ref.Hash().String(),
		URI:           remoteURL,
		TrackedBranch: tracked[remote+"/"+branch],
	}, nil
}

func (h *Handle) remoteURL(name string) (string, error) {
	remote, err := h.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("%w: remote %s", ErrNotFound, name)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: remote %s has no URL", ErrValidation, name)
	}

	return urls[0], nil
}

// trackedBranches maps "<remote>/<branch>" to the local branch tracking it.
func (h *Handle) trackedBranches() (map[string]string, error) {
	cfg, err := h.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	tracked := make(map[string]string, len(cfg.Branches))
	for name, b := range cfg.Branches {
		if b.Remote == "" || b.Merge == "" {
			continue
		}
		tracked[b.Remote+"/"+b.Merge.Short()] = name
	}

	return tracked, nil
}

// TrackedRemote returns the remote branch the current branch tracks, if any.
func (s *Service) TrackedRemote(_ context.Context, target Target) (*RemoteRef, error) {
	h, err := s.arena.Acquire(target)
	if err != nil {
		return nil, err
	}

	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}
	if snap.ref == nil || !snap.ref.Name().IsBranch() {
		return nil, nil //nolint:nilnil //no tracked branch
	}

	cfg, err := h.repo.Branch(snap.ref.Name().Short())
	if err != nil || cfg.Remote == "" {
		return nil, nil //nolint:nilnil //no tracked branch
	}

	ref, err := h.remoteRef(cfg.Remote, cfg.Merge.Short())
	if errors.Is(err, ErrNotFound) {
		return nil, nil //nolint:nilnil //not fetched yet
	}

	return ref, err
}
