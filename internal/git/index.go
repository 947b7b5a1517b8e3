package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/format/index"
	"go.uber.org/zap"
)

// Stage records the working-tree state of every path covered by scope in the
// index: modified and untracked files are added, missing ones are removed.
func (s *Service) Stage(ctx context.Context, target Target, scope string) error {
	defer observe(opStage)()

	scope = normalizeScope(scope)

	h, err := s.lock(ctx, target)
	if err != nil {
		return err
	}
	defer h.Unlock()

	v, err := h.view(scope)
	if err != nil {
		return err
	}
	if !v.exists(scope) {
		return fmt.Errorf("%w: path %s", ErrNotFound, scope)
	}

	matcher, err := h.ignoreMatcher()
	if err != nil {
		return err
	}

	changes := diffTreeIndex(v.disk, v.idx, matcher, scope)
	if len(changes) == 0 {
		return nil
	}

	idx := v.snap.index
	for path, category := range changes {
		if category == CategoryMissing {
			if _, err := idx.Remove(path); err != nil {
				return fmt.Errorf("failed to remove %s from index: %w", path, err)
			}
			continue
		}

		if err := h.stageFile(idx, path); err != nil {
			return err
		}
	}

	if err := h.publish(func() error { return h.repo.Storer.SetIndex(idx) }); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	s.logger.Info("paths staged",
		zap.String("project", target.ID),
		zap.String("scope", scope),
		zap.Int("count", len(changes)))

	return nil
}

// StageAll stages every change in the working tree.
func (s *Service) StageAll(ctx context.Context, target Target) error {
	return s.Stage(ctx, target, "")
}

// Unstage resets the index entries covered by scope to their HEAD state.
func (s *Service) Unstage(ctx context.Context, target Target, scope string) error {
	defer observe(opUnstage)()

	scope = normalizeScope(scope)

	h, err := s.lock(ctx, target)
	if err != nil {
		return err
	}
	defer h.Unlock()

	v, err := h.view(scope)
	if err != nil {
		return err
	}
	if !v.exists(scope) {
		return fmt.Errorf("%w: path %s", ErrNotFound, scope)
	}

	changes := diffIndexHead(v.head, v.idx, scope)
	if len(changes) == 0 {
		return nil
	}

	idx := v.snap.index
	for path, category := range changes {
		if category == CategoryAdded {
			if _, err := idx.Remove(path); err != nil {
				return fmt.Errorf("failed to remove %s from index: %w", path, err)
			}
			continue
		}

		if err := h.resetEntry(idx, path, v.head[path]); err != nil {
			return err
		}
	}

	if err := h.publish(func() error { return h.repo.Storer.SetIndex(idx) }); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	s.logger.Info("paths unstaged",
		zap.String("project", target.ID),
		zap.String("scope", scope),
		zap.Int("count", len(changes)))

	return nil
}

// stageFile stores the working-tree content of path as a blob and points the
// index entry at it.
func (h *Handle) stageFile(idx *index.Index, path string) error {
	full := filepath.Join(h.target.Dir, filepath.FromSlash(path))

	info, err := os.Lstat(full)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var (
		data []byte
		mode filemode.FileMode
	)
	if info.Mode()&os.ModeSymlink != 0 {
		target, linkErr := os.Readlink(full)
		if linkErr != nil {
			return fmt.Errorf("failed to read link %s: %w", path, linkErr)
		}
		data, mode = []byte(filepath.ToSlash(target)), filemode.Symlink
	} else {
		if data, err = os.ReadFile(full); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		mode = regularMode(info.Mode())
	}

	hash, err := h.storeBlob(data)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", path, err)
	}

	entry := indexEntry(idx, path)
	entry.Hash = hash
	entry.Mode = mode
	entry.Size = uint32(len(data)) //nolint:gosec //index sizes are 32-bit
	entry.ModifiedAt = info.ModTime()

	return nil
}

func (h *Handle) resetEntry(idx *index.Index, path string, state fileState) error {
	blob, err := h.repo.BlobObject(state.hash)
	if err != nil {
		return fmt.Errorf("failed to read blob of %s: %w", path, err)
	}

	entry := indexEntry(idx, path)
	entry.Hash = state.hash
	entry.Mode = state.mode
	entry.Size = uint32(blob.Size) //nolint:gosec //index sizes are 32-bit

	return nil
}

func indexEntry(idx *index.Index, path string) *index.Entry {
	if entry, err := idx.Entry(path); err == nil {
		return entry
	}

	return idx.Add(path)
}

func (h *Handle) storeBlob(data []byte) (plumbing.Hash, error) {
	obj := h.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return plumbing.ZeroHash, err
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, err
	}

	return h.repo.Storer.SetEncodedObject(obj)
}
