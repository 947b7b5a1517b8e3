package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"go.uber.org/zap/zaptest"
)

// harness is a project repository driven through the Service.
type harness struct {
	t *testing.T

	svc    *Service
	target Target
}

func newService(t *testing.T, config Config) *Service {
	t.Helper()

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Author.Name == "" {
		config.Author = AuthorConfig{Name: "Test Author", Email: "test@example.com"}
	}

	logger := zaptest.NewLogger(t)

	return NewService(NewArena(logger), config, logger)
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	return newHarnessWith(t, newService(t, Config{}))
}

func newHarnessWith(t *testing.T, svc *Service) *harness {
	t.Helper()

	return &harness{
		t:   t,
		svc: svc,
		target: Target{
			ID:  t.Name(),
			Dir: filepath.Join(t.TempDir(), "repo"),
		},
	}
}

// cloneHarness creates a harness whose repository is cloned from remote.
func cloneHarness(t *testing.T, remote, branch string) *harness {
	t.Helper()

	h := newHarness(t)
	req := CloneRequest{URL: remote, Branch: branch, Directory: h.target.Dir}
	if _, err := h.svc.Clone(context.Background(), req); err != nil {
		t.Fatalf("Clone failed: %v", err)
	}

	return h
}

// bareRemote creates an empty bare repository and returns its path.
func bareRemote(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "remote.git")
	if _, err := git.PlainInit(dir, true); err != nil {
		t.Fatal(err)
	}

	return dir
}

func (h *harness) ctx() context.Context {
	return context.Background()
}

func (h *harness) handle() *Handle {
	h.t.Helper()

	handle, err := h.svc.arena.Acquire(h.target)
	if err != nil {
		h.t.Fatal(err)
	}

	return handle
}

func (h *harness) path(name string) string {
	return filepath.Join(h.target.Dir, filepath.FromSlash(name))
}

func (h *harness) write(name, content string) {
	h.t.Helper()

	// make sure the repository exists before touching the tree
	h.handle()

	full := h.path(name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		h.t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		h.t.Fatal(err)
	}
}

func (h *harness) read(name string) string {
	h.t.Helper()

	data, err := os.ReadFile(h.path(name))
	if err != nil {
		h.t.Fatal(err)
	}

	return string(data)
}

func (h *harness) remove(name string) {
	h.t.Helper()

	if err := os.Remove(h.path(name)); err != nil {
		h.t.Fatal(err)
	}
}

func (h *harness) stage(scope string) {
	h.t.Helper()

	if err := h.svc.Stage(h.ctx(), h.target, scope); err != nil {
		h.t.Fatalf("Stage(%q) failed: %v", scope, err)
	}
}

func (h *harness) commit(message string) string {
	h.t.Helper()

	info, err := h.svc.Commit(h.ctx(), h.target, CommitRequest{Message: message})
	if err != nil {
		h.t.Fatalf("Commit failed: %v", err)
	}

	return info.ID
}

// commitFile writes, stages and commits a single file.
func (h *harness) commitFile(name, content, message string) string {
	h.t.Helper()

	h.write(name, content)
	h.stage(name)

	return h.commit(message)
}

func (h *harness) status(scope string) *Status {
	h.t.Helper()

	status, err := h.svc.Status(h.ctx(), h.target, scope)
	if err != nil {
		h.t.Fatalf("Status(%q) failed: %v", scope, err)
	}

	return status
}

func (h *harness) checkout(branch string) {
	h.t.Helper()

	if _, err := h.svc.Checkout(h.ctx(), h.target, branch); err != nil {
		h.t.Fatalf("Checkout(%q) failed: %v", branch, err)
	}
}

func (h *harness) branch(name string) {
	h.t.Helper()

	if _, err := h.svc.CreateBranch(h.ctx(), h.target, BranchCreateRequest{Name: name}); err != nil {
		h.t.Fatalf("CreateBranch(%q) failed: %v", name, err)
	}
}

func (h *harness) addRemote(name, url string) {
	h.t.Helper()

	if _, err := h.svc.AddRemote(h.ctx(), h.target, name, url); err != nil {
		h.t.Fatalf("AddRemote failed: %v", err)
	}
}

func (h *harness) push(req PushRequest) *PushResult {
	h.t.Helper()

	result, err := h.svc.Push(h.ctx(), h.target, req)
	if err != nil {
		h.t.Fatalf("Push failed: %v", err)
	}

	return result
}

func (h *harness) head() string {
	h.t.Helper()

	snap, err := h.handle().snapshot()
	if err != nil {
		h.t.Fatal(err)
	}
	if snap.head == nil {
		return ""
	}

	return snap.head.Hash.String()
}

// current returns the name of the checked out branch.
func (h *harness) current() string {
	h.t.Helper()

	snap, err := h.handle().snapshot()
	if err != nil {
		h.t.Fatal(err)
	}
	if snap.ref == nil {
		h.t.Fatal("HEAD is unborn")
	}

	return snap.ref.Name().Short()
}
