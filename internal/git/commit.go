package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"go.uber.org/zap"
)

const defaultLogLimit = 100

// Commit records the index as a new commit on the current branch, or replaces
// the tip commit when amending. Committing during a merge concludes it with a
// merge commit.
func (s *Service) Commit(ctx context.Context, target Target, req CommitRequest) (*CommitInfo, error) {
	defer observe(opCommit)()

	message := strings.TrimSpace(req.Message)
	if message == "" && !req.Amend {
		return nil, fmt.Errorf("%w: commit message is required", ErrValidation)
	}

	h, err := s.lock(ctx, target)
	if err != nil {
		return nil, err
	}
	defer h.Unlock()

	v, err := h.view("")
	if err != nil {
		return nil, err
	}

	mergeHead, merging := h.mergeHead()

	if req.Amend {
		if merging {
			return nil, fmt.Errorf("%w: cannot amend while a merge is in progress", ErrValidation)
		}
		if v.snap.head == nil {
			return nil, fmt.Errorf("%w: nothing to amend", ErrValidation)
		}
		if message == "" {
			message = v.snap.head.Message
		}
	} else if !merging && len(diffIndexHead(v.head, v.idx, "")) == 0 {
		return nil, fmt.Errorf("%w: nothing to commit", ErrValidation)
	}

	wt, err := h.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	opts := &git.CommitOptions{
		Author:            s.signature(req.AuthorName, req.AuthorEmail),
		Amend:             req.Amend,
		AllowEmptyCommits: true,
	}
	if merging && v.snap.head != nil {
		opts.Parents = []plumbing.Hash{v.snap.head.Hash, mergeHead}
	}

	var hash plumbing.Hash
	err = h.publish(func() error {
		var commitErr error
		hash, commitErr = wt.Commit(message, opts)
		if commitErr != nil {
			return commitErr
		}
		return h.clearMergeHead()
	})
	if err != nil {
		s.logger.Error("failed to commit", zap.String("project", target.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	commit, err := h.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}

	s.logger.Info("commit created",
		zap.String("project", target.ID),
		zap.String("hash", hash.String()),
		zap.Bool("amend", req.Amend))

	return newCommitInfo(commit), nil
}

// Log lists the commits reachable from ref, newest first. An empty ref means
// HEAD and a repository without commits has an empty log. A non-empty path
// keeps only commits touching it.
func (s *Service) Log(_ context.Context, target Target, ref, path string, limit int) ([]CommitInfo, error) {
	h, err := s.arena.Acquire(target)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultLogLimit
	}

	if ref == "" || ref == "HEAD" {
		snap, snapErr := h.snapshot()
		if snapErr != nil {
			return nil, snapErr
		}
		if snap.head == nil {
			return []CommitInfo{}, nil
		}
		ref = snap.head.Hash.String()
	}

	from, err := h.resolve(ref)
	if err != nil {
		return nil, err
	}

	opts := &git.LogOptions{From: from}
	if scope := normalizeScope(path); scope != "" {
		opts.PathFilter = func(p string) bool { return inScope(p, scope) }
	}

	iter, err := h.repo.Log(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	commits := make([]CommitInfo, 0, limit)
	for len(commits) < limit {
		commit, nextErr := iter.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			return nil, fmt.Errorf("failed to read log: %w", nextErr)
		}
		commits = append(commits, *newCommitInfo(commit))
	}

	return commits, nil
}

// resolve turns a revision into a commit hash.
func (h *Handle) resolve(rev string) (plumbing.Hash, error) {
	hash, err := h.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: revision %s", ErrNotFound, rev)
	}

	commit, err := h.repo.CommitObject(*hash)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: commit %s", ErrNotFound, rev)
	}

	return commit.Hash, nil
}

func (s *Service) signature(name, email string) *object.Signature {
	if name == "" {
		name = s.config.Author.Name
	}
	if email == "" {
		email = s.config.Author.Email
	}

	return &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Now(),
	}
}

func newCommitInfo(c *object.Commit) *CommitInfo {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return &CommitInfo{
		ID:          c.Hash.String(),
		Message:     c.Message,
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
		Time:        c.Author.When,
		Parents:     parents,
	}
}
