package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/format/index"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
	"go.uber.org/zap"
)

const mergeHeadRef plumbing.ReferenceName = "MERGE_HEAD"

// mergedPath is the outcome of merging one path.
type mergedPath struct {
	state   fileState // zero when the path is deleted
	content []byte    // working tree content, when it differs from ours
	clean   bool
}

// Merge merges source into the current branch.
//
// Expected outcomes, including conflicts and refusals, are reported in the
// result; the error return is reserved for invalid requests.
func (s *Service) Merge(ctx context.Context, target Target, source string) (*MergeResult, error) {
	defer observe(opMerge)()

	if source == "" {
		return nil, fmt.Errorf("%w: merge source is required", ErrValidation)
	}

	h, err := s.lock(ctx, target)
	if err != nil {
		return nil, err
	}
	defer h.Unlock()

	log := s.logger.With(zap.String("project", target.ID), zap.String("source", source))

	result, err := s.merge(h, source)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
			return nil, err
		}
		log.Error("merge failed", zap.Error(err))
		result = &MergeResult{Status: MergeFailed, Message: err.Error()}
	}

	if result.Head == "" {
		if snap, snapErr := h.snapshot(); snapErr == nil && snap.head != nil {
			result.Head = snap.head.Hash.String()
		}
	}

	mergesTotal.WithLabelValues(string(result.Status)).Inc()
	log.Info("merge finished",
		zap.String("status", string(result.Status)),
		zap.Strings("conflicts", result.Conflicts))

	return result, nil
}

func (s *Service) merge(h *Handle, source string) (*MergeResult, error) {
	status, v, err := h.status("")
	if err != nil {
		return nil, err
	}

	ours := v.snap.head
	if ours == nil {
		return &MergeResult{Status: MergeNotSupported, Message: "HEAD has no commits"}, nil
	}

	theirsHash, err := h.resolve(source)
	if err != nil {
		return nil, err
	}
	if !h.reachable(theirsHash) {
		return nil, fmt.Errorf("%w: %s is not reachable from any ref", ErrNotFound, source)
	}

	if theirsHash == ours.Hash || h.isAncestor(theirsHash, ours.Hash) {
		return &MergeResult{Status: MergeAlreadyUpToDate, Head: ours.Hash.String()}, nil
	}

	if !status.IsClean() {
		return &MergeResult{
			Status:  MergeFailed,
			Head:    ours.Hash.String(),
			Message: "working tree has uncommitted changes",
		}, nil
	}

	theirs, err := h.repo.CommitObject(theirsHash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", theirsHash, err)
	}

	wt, err := h.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	if h.isAncestor(ours.Hash, theirsHash) {
		theirsFiles, filesErr := headFiles(theirs)
		if filesErr != nil {
			return nil, filesErr
		}
		if paths := overwritten(status.Untracked, v.head, theirsFiles); len(paths) > 0 {
			return untrackedOverwritten(ours, paths), nil
		}

		err = h.publish(func() error {
			if resetErr := wt.Reset(&git.ResetOptions{Commit: theirsHash, Mode: git.HardReset}); resetErr != nil {
				return resetErr
			}
			return h.clearMergeHead()
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fast-forward: %w", err)
		}
		return &MergeResult{Status: MergeFastForward, Head: theirsHash.String()}, nil
	}

	bases, err := ours.MergeBase(theirs)
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base: %w", err)
	}
	if len(bases) == 0 {
		return &MergeResult{
			Status:  MergeFailed,
			Head:    ours.Hash.String(),
			Message: "no merge base",
		}, nil
	}

	merged, err := h.mergeTrees(bases[0], ours, theirs, source)
	if err != nil {
		return nil, err
	}

	if paths := overwritten(status.Untracked, v.head, mergedFiles(merged)); len(paths) > 0 {
		return untrackedOverwritten(ours, paths), nil
	}

	conflicts, err := h.applyMerge(v.snap.index, v.head, merged, theirsHash)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return &MergeResult{
			Status:    MergeConflicting,
			Head:      ours.Hash.String(),
			Conflicts: conflicts,
		}, nil
	}

	branch := "HEAD"
	if v.snap.ref != nil {
		branch = v.snap.ref.Name().Short()
	}

	var hash plumbing.Hash
	err = h.publish(func() error {
		var commitErr error
		hash, commitErr = wt.Commit(fmt.Sprintf("Merge %s into %s", source, branch), &git.CommitOptions{
			Author:            s.signature("", ""),
			Parents:           []plumbing.Hash{ours.Hash, theirsHash},
			AllowEmptyCommits: true,
		})
		if commitErr != nil {
			return commitErr
		}
		return h.clearMergeHead()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit merge: %w", err)
	}

	return &MergeResult{Status: MergeMerged, Head: hash.String()}, nil
}

func untrackedOverwritten(ours *object.Commit, paths []string) *MergeResult {
	return &MergeResult{
		Status:    MergeFailed,
		Head:      ours.Hash.String(),
		Conflicts: paths,
		Message:   "untracked working tree files would be overwritten",
	}
}

// mergedFiles lists the paths present after the merge. Conflicted paths count
// as new content.
func mergedFiles(merged map[string]mergedPath) map[string]fileState {
	files := make(map[string]fileState, len(merged))
	for path, m := range merged {
		switch {
		case !m.clean:
			files[path] = fileState{mode: filemode.Regular}
		case !m.state.hash.IsZero():
			files[path] = m.state
		}
	}

	return files
}

// mergeTrees merges every path of the three trees. A path changed on one side
// only takes that side; a path changed on both sides goes through a text
// merge.
func (h *Handle) mergeTrees(base, ours, theirs *object.Commit, label string) (map[string]mergedPath, error) {
	baseFiles, err := headFiles(base)
	if err != nil {
		return nil, err
	}
	oursFiles, err := headFiles(ours)
	if err != nil {
		return nil, err
	}
	theirsFiles, err := headFiles(theirs)
	if err != nil {
		return nil, err
	}

	paths := make(map[string]struct{}, len(oursFiles)+len(theirsFiles))
	for _, files := range []map[string]fileState{baseFiles, oursFiles, theirsFiles} {
		for path := range files {
			paths[path] = struct{}{}
		}
	}

	merged := make(map[string]mergedPath, len(paths))
	for path := range paths {
		b, o, t := baseFiles[path], oursFiles[path], theirsFiles[path]

		switch {
		case o == t, t == b:
			merged[path] = mergedPath{state: o, clean: true}
		case o == b:
			merged[path] = mergedPath{state: t, clean: true}
		default:
			m, mergeErr := h.mergeFile(b, o, t, label)
			if mergeErr != nil {
				return nil, fmt.Errorf("failed to merge %s: %w", path, mergeErr)
			}
			merged[path] = m
		}
	}

	return merged, nil
}

// mergeFile merges a path both sides changed.
func (h *Handle) mergeFile(base, ours, theirs fileState, label string) (mergedPath, error) {
	mode := ours.mode
	if mode == filemode.Empty || (mode == base.mode && theirs.mode != filemode.Empty) {
		mode = theirs.mode
	}

	if ours.hash == theirs.hash {
		return mergedPath{state: fileState{hash: ours.hash, mode: mode}, clean: true}, nil
	}

	baseData, err := h.readBlob(base.hash)
	if err != nil {
		return mergedPath{}, err
	}
	oursData, err := h.readBlob(ours.hash)
	if err != nil {
		return mergedPath{}, err
	}
	theirsData, err := h.readBlob(theirs.hash)
	if err != nil {
		return mergedPath{}, err
	}

	// delete/modify, symlinks and binaries cannot be merged line by line
	if ours.mode == filemode.Empty || theirs.mode == filemode.Empty ||
		mode == filemode.Symlink || isBinary(baseData) || isBinary(oursData) || isBinary(theirsData) {
		content := oursData
		if ours.mode == filemode.Empty {
			content = theirsData
		}
		return mergedPath{state: ours, content: content, clean: false}, nil
	}

	text, conflict := merge3(string(baseData), string(oursData), string(theirsData), label)
	if conflict {
		return mergedPath{state: ours, content: []byte(text), clean: false}, nil
	}

	hash, err := h.storeBlob([]byte(text))
	if err != nil {
		return mergedPath{}, err
	}

	return mergedPath{state: fileState{hash: hash, mode: mode}, content: []byte(text), clean: true}, nil
}

func (h *Handle) readBlob(hash plumbing.Hash) ([]byte, error) {
	if hash.IsZero() {
		return nil, nil
	}

	blob, err := h.repo.BlobObject(hash)
	if err != nil {
		return nil, err
	}

	r, err := blob.Reader()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// applyMerge writes the merged paths that differ from ours to the working
// tree and the index. Conflicted paths keep ours in the index and get the
// marked content in the working tree, and MERGE_HEAD records theirs until the
// resolution is committed. It returns the conflicted paths.
func (h *Handle) applyMerge(idx *index.Index, ours map[string]fileState, merged map[string]mergedPath, theirs plumbing.Hash) ([]string, error) {
	var conflicts []string

	err := h.publish(func() error {
		for path, m := range merged {
			if !m.clean {
				conflicts = append(conflicts, path)
				if err := h.writeWorktree(path, m.content, m.state.mode); err != nil {
					return err
				}
				continue
			}

			if m.state == ours[path] {
				continue
			}

			if m.state.hash.IsZero() {
				if err := h.removeWorktree(path); err != nil {
					return err
				}
				if _, err := idx.Remove(path); err != nil {
					return fmt.Errorf("failed to remove %s from index: %w", path, err)
				}
				continue
			}

			content := m.content
			if content == nil {
				data, err := h.readBlob(m.state.hash)
				if err != nil {
					return err
				}
				content = data
			}
			if err := h.writeWorktree(path, content, m.state.mode); err != nil {
				return err
			}
			if err := h.resetEntry(idx, path, m.state); err != nil {
				return err
			}
		}

		if err := h.repo.Storer.SetIndex(idx); err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return h.repo.Storer.SetReference(plumbing.NewHashReference(mergeHeadRef, theirs))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply merge: %w", err)
	}

	sort.Strings(conflicts)

	return conflicts, nil
}

func (h *Handle) writeWorktree(path string, content []byte, mode filemode.FileMode) error {
	full := filepath.Join(h.target.Dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	if mode == filemode.Symlink {
		_ = os.Remove(full)
		return os.Symlink(string(content), full)
	}

	perm := os.FileMode(0o644)
	if mode == filemode.Executable {
		perm = 0o755
	}

	return os.WriteFile(full, content, perm)
}

func (h *Handle) removeWorktree(path string) error {
	err := os.Remove(filepath.Join(h.target.Dir, filepath.FromSlash(path)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// reachable reports whether commit is reachable from any ref.
func (h *Handle) reachable(commit plumbing.Hash) bool {
	refs, err := h.repo.References()
	if err != nil {
		return false
	}

	found := false
	_ = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}

		tip := ref.Hash()
		if tag, tagErr := h.repo.TagObject(tip); tagErr == nil {
			tip = tag.Target
		}

		if tip == commit || h.isAncestor(commit, tip) {
			found = true
			return storer.ErrStop
		}
		return nil
	})

	return found
}

// mergeHead returns the commit an unfinished merge is bringing in.
func (h *Handle) mergeHead() (plumbing.Hash, bool) {
	ref, err := h.repo.Storer.Reference(mergeHeadRef)
	if err != nil {
		return plumbing.ZeroHash, false
	}

	return ref.Hash(), true
}

func (h *Handle) clearMergeHead() error {
	err := h.repo.Storer.RemoveReference(mergeHeadRef)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil
	}

	return err
}
