package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"go.uber.org/zap"
)

// CreateTag tags a revision. A message makes the tag annotated.
func (s *Service) CreateTag(ctx context.Context, target Target, req TagCreateRequest) (*TagInfo, error) {
	if err := validateRefName(req.Name); err != nil {
		return nil, err
	}

	h, err := s.lock(ctx, target)
	if err != nil {
		return nil, err
	}
	defer h.Unlock()

	if _, tagErr := h.repo.Tag(req.Name); tagErr == nil {
		return nil, fmt.Errorf("%w: tag %s already exists", ErrValidation, req.Name)
	}

	rev := req.TargetRef
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := h.resolve(rev)
	if err != nil {
		return nil, err
	}

	var opts *git.CreateTagOptions
	if req.Message != "" {
		opts = &git.CreateTagOptions{
			Tagger:  s.signature("", ""),
			Message: req.Message,
		}
	}

	err = h.publish(func() error {
		_, tagErr := h.repo.CreateTag(req.Name, hash, opts)
		return tagErr
	})
	if errors.Is(err, git.ErrTagExists) {
		return nil, fmt.Errorf("%w: tag %s already exists", ErrValidation, req.Name)
	}
	if err != nil {
		s.logger.Error("failed to create tag", zap.String("project", target.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create tag %s: %w", req.Name, err)
	}

	s.logger.Info("tag created",
		zap.String("project", target.ID),
		zap.String("tag", req.Name),
		zap.String("hash", hash.String()))

	return &TagInfo{
		Name:      req.Name,
		ID:        hash.String(),
		Annotated: opts != nil,
		Message:   req.Message,
	}, nil
}

// ListTags lists the tags sorted by name.
func (s *Service) ListTags(_ context.Context, target Target) ([]TagInfo, error) {
	h, err := s.arena.Acquire(target)
	if err != nil {
		return nil, err
	}

	tags, err := h.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var infos []TagInfo
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		info := TagInfo{
			Name: ref.Name().Short(),
			ID:   ref.Hash().String(),
		}

		if obj, tagErr := h.repo.TagObject(ref.Hash()); tagErr == nil {
			info.Annotated = true
			info.Message = strings.TrimSpace(obj.Message)
			if commit, commitErr := obj.Commit(); commitErr == nil {
				info.ID = commit.Hash.String()
			}
		}

		infos = append(infos, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos, nil
}
