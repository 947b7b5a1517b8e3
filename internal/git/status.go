package git

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v6/plumbing/format/gitignore"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// axis maps paths to their category on one status axis.
type axis map[string]Category

// diffIndexHead compares index entries against the HEAD tree.
func diffIndexHead(head, idx map[string]fileState, scope string) axis {
	changes := make(axis)

	for path, entry := range idx {
		if !inScope(path, scope) {
			continue
		}

		committed, ok := head[path]
		switch {
		case !ok:
			changes[path] = CategoryAdded
		case committed != entry:
			changes[path] = CategoryChanged
		}
	}

	for path := range head {
		if !inScope(path, scope) {
			continue
		}
		if _, ok := idx[path]; !ok {
			changes[path] = CategoryRemoved
		}
	}

	return changes
}

// diffTreeIndex compares the working tree against index entries. Ignore rules
// apply to untracked paths only.
func diffTreeIndex(disk, idx map[string]fileState, matcher gitignore.Matcher, scope string) axis {
	changes := make(axis)

	for path, entry := range idx {
		if !inScope(path, scope) {
			continue
		}

		current, ok := disk[path]
		switch {
		case !ok:
			changes[path] = CategoryMissing
		case current != entry:
			changes[path] = CategoryModified
		}
	}

	for path := range disk {
		if !inScope(path, scope) {
			continue
		}
		if _, ok := idx[path]; ok {
			continue
		}
		if ignored(matcher, path) {
			continue
		}
		changes[path] = CategoryUntracked
	}

	return changes
}

func (a axis) paths(category Category) []string {
	paths := lo.Keys(lo.PickByValues(a, []Category{category}))
	sort.Strings(paths)

	return paths
}

func newStatus(staged, unstaged axis) *Status {
	return &Status{
		Added:     staged.paths(CategoryAdded),
		Changed:   staged.paths(CategoryChanged),
		Removed:   staged.paths(CategoryRemoved),
		Modified:  unstaged.paths(CategoryModified),
		Missing:   unstaged.paths(CategoryMissing),
		Untracked: unstaged.paths(CategoryUntracked),
	}
}

// view is everything a status computation reads, taken at one point in time.
type view struct {
	snap *snapshot
	head map[string]fileState
	idx  map[string]fileState
	disk map[string]fileState
}

func (h *Handle) view(scope string) (*view, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}

	head, err := headFiles(snap.head)
	if err != nil {
		return nil, err
	}

	disk, err := scanWorktree(h.target.Dir, scope)
	if err != nil {
		return nil, err
	}

	return &view{
		snap: snap,
		head: head,
		idx:  indexFiles(snap.index),
		disk: disk,
	}, nil
}

func (v *view) exists(scope string) bool {
	return scope == "" || anyInScope(v.disk, scope) || anyInScope(v.idx, scope) || anyInScope(v.head, scope)
}

func (h *Handle) status(scope string) (*Status, *view, error) {
	v, err := h.view(scope)
	if err != nil {
		return nil, nil, err
	}

	matcher, err := h.ignoreMatcher()
	if err != nil {
		return nil, nil, err
	}

	return newStatus(
		diffIndexHead(v.head, v.idx, scope),
		diffTreeIndex(v.disk, v.idx, matcher, scope),
	), v, nil
}

// Status computes the status snapshot of the paths covered by scope.
func (s *Service) Status(ctx context.Context, target Target, scope string) (*Status, error) {
	defer observe(opStatus)()

	scope = normalizeScope(scope)

	h, err := s.arena.Acquire(target)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status, v, err := h.status(scope)
	if err != nil {
		s.logger.Error("failed to compute status", zap.String("project", target.ID), zap.Error(err))
		return nil, err
	}
	if !v.exists(scope) {
		return nil, fmt.Errorf("%w: path %s", ErrNotFound, scope)
	}

	return status, nil
}
