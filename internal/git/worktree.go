package git

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	format "github.com/go-git/go-git/v6/plumbing/format/config"
	"github.com/go-git/go-git/v6/plumbing/format/gitignore"
	"github.com/go-git/go-git/v6/plumbing/format/index"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// fileState is the content identity of a path: blob hash and file mode.
type fileState struct {
	hash plumbing.Hash
	mode filemode.FileMode
}

// inScope reports whether path is covered by scope. An empty scope covers
// everything, a scope ending in "/" covers a folder, anything else covers the
// exact path or a folder of that name.
func inScope(path, scope string) bool {
	if scope == "" {
		return true
	}
	if strings.HasSuffix(scope, "/") {
		return strings.HasPrefix(path, scope)
	}

	return path == scope || strings.HasPrefix(path, scope+"/")
}

// dirInScope reports whether any path below dir may be covered by scope.
func dirInScope(dir, scope string) bool {
	if scope == "" {
		return true
	}

	return strings.HasPrefix(dir+"/", scope) || strings.HasPrefix(scope, dir+"/") || inScope(dir, scope)
}

func normalizeScope(scope string) string {
	scope = strings.TrimPrefix(filepath.ToSlash(scope), "/")
	if scope == "." || scope == "./" {
		return ""
	}

	return scope
}

func anyInScope(files map[string]fileState, scope string) bool {
	for path := range files {
		if inScope(path, scope) {
			return true
		}
	}

	return false
}

// headFiles lists the files of the commit tree. A nil commit is an empty tree.
func headFiles(commit *object.Commit) (map[string]fileState, error) {
	files := make(map[string]fileState)
	if commit == nil {
		return files, nil
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", commit.Hash, err)
	}

	err = tree.Files().ForEach(func(f *object.File) error {
		files[f.Name] = fileState{hash: f.Hash, mode: f.Mode}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk tree of %s: %w", commit.Hash, err)
	}

	return files, nil
}

// overwritten lists the untracked paths that moving the working tree from
// the from tree to the to tree would write over. A path collides when to
// writes it, one of its parent folders, or a file below it.
func overwritten(untracked []string, from, to map[string]fileState) []string {
	writes := func(path string) bool {
		state, ok := to[path]
		return ok && state != from[path]
	}

	var paths []string
	for _, path := range untracked {
		collides := writes(path)
		for dir := path; !collides; {
			i := strings.LastIndexByte(dir, '/')
			if i < 0 {
				break
			}
			dir = dir[:i]
			collides = writes(dir)
		}
		for name := range to {
			if collides {
				break
			}
			collides = strings.HasPrefix(name, path+"/") && writes(name)
		}

		if collides {
			paths = append(paths, path)
		}
	}

	return paths
}

// indexFiles lists the stage 0 entries of the index.
func indexFiles(idx *index.Index) map[string]fileState {
	files := make(map[string]fileState, len(idx.Entries))
	for _, e := range idx.Entries {
		if e.Stage != 0 {
			continue
		}
		files[e.Name] = fileState{hash: e.Hash, mode: e.Mode}
	}

	return files
}

// scanWorktree hashes the files of the working directory that are covered by
// scope. Keys are slash-separated paths relative to root.
func scanWorktree(root, scope string) (map[string]fileState, error) {
	files := make(map[string]fileState)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if d.Name() == ".git" || !dirInScope(rel, scope) {
				return filepath.SkipDir
			}
			return nil
		}

		if !inScope(rel, scope) {
			return nil
		}

		state, ok, err := hashFile(path, d)
		if err != nil {
			return err
		}
		if ok {
			files[rel] = state
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan working tree: %w", err)
	}

	return files, nil
}

// hashFile computes the blob identity of a regular file or symlink. Other file
// types are skipped.
func hashFile(path string, d fs.DirEntry) (fileState, bool, error) {
	switch {
	case d.Type()&fs.ModeSymlink != 0:
		target, err := os.Readlink(path)
		if err != nil {
			return fileState{}, false, err
		}
		hash, _ := plumbing.FromObjectFormat(format.SHA1).Compute(plumbing.BlobObject, []byte(filepath.ToSlash(target)))
		return fileState{
			hash: hash,
			mode: filemode.Symlink,
		}, true, nil

	case d.Type().IsRegular():
		info, err := d.Info()
		if err != nil {
			return fileState{}, false, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fileState{}, false, err
		}
		hash, _ := plumbing.FromObjectFormat(format.SHA1).Compute(plumbing.BlobObject, data)
		return fileState{
			hash: hash,
			mode: regularMode(info.Mode()),
		}, true, nil
	}

	return fileState{}, false, nil
}

func regularMode(mode fs.FileMode) filemode.FileMode {
	if mode.Perm()&0o111 != 0 {
		return filemode.Executable
	}

	return filemode.Regular
}

// ignoreMatcher reads the .gitignore files of the working tree.
func (h *Handle) ignoreMatcher() (gitignore.Matcher, error) {
	wt, err := h.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore patterns: %w", err)
	}

	return gitignore.NewMatcher(patterns), nil
}

func ignored(m gitignore.Matcher, path string) bool {
	if m == nil {
		return false
	}

	return m.Match(strings.Split(path, "/"), false)
}
