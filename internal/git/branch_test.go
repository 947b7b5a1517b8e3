package git

import (
	"errors"
	"testing"
)

func TestService_CreateBranch(t *testing.T) {
	h := newHarness(t)
	first := h.commitFile("a.txt", "a", "first")
	second := h.commitFile("a.txt", "a2", "second")

	info, err := h.svc.CreateBranch(h.ctx(), h.target, BranchCreateRequest{Name: "feature-branch"})
	if err != nil {
		t.Fatalf("CreateBranch failed: %v", err)
	}
	if info.ID != second {
		t.Errorf("Expected branch at HEAD %s, got %s", second, info.ID)
	}

	info, err = h.svc.CreateBranch(h.ctx(), h.target, BranchCreateRequest{Name: "old", StartPoint: first})
	if err != nil {
		t.Fatalf("CreateBranch failed: %v", err)
	}
	if info.ID != first {
		t.Errorf("Expected branch at %s, got %s", first, info.ID)
	}

	branches, err := h.svc.ListBranches(h.ctx(), h.target)
	if err != nil {
		t.Fatalf("ListBranches failed: %v", err)
	}

	base := h.current()
	names := make(map[string]bool, len(branches))
	for _, b := range branches {
		names[b.Name] = true
		if b.Current != (b.Name == base) {
			t.Errorf("Unexpected Current=%v for branch %s", b.Current, b.Name)
		}
	}
	for _, name := range []string{"feature-branch", base, "old"} {
		if !names[name] {
			t.Errorf("Expected branch %s to be listed", name)
		}
	}
}

func TestService_CreateBranch_Errors(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a", "initial commit")
	h.branch("exists")

	tests := []struct {
		name string
		req  BranchCreateRequest
		want error
	}{
		{name: "empty name", req: BranchCreateRequest{}, want: ErrValidation},
		{name: "invalid name", req: BranchCreateRequest{Name: "bad..name"}, want: ErrValidation},
		{name: "existing", req: BranchCreateRequest{Name: "exists"}, want: ErrValidation},
		{name: "unknown start point", req: BranchCreateRequest{Name: "x", StartPoint: "nope"}, want: ErrNotFound},
		{name: "malformed remote", req: BranchCreateRequest{Name: "y", TrackRemote: "origin"}, want: ErrValidation},
		{name: "unknown remote branch", req: BranchCreateRequest{Name: "z", TrackRemote: "origin/nope"}, want: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.CreateBranch(h.ctx(), h.target, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestService_Checkout(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "main", "initial commit")
	base := h.current()
	h.branch("feature")
	h.checkout("feature")
	h.commitFile("a.txt", "feature", "feature change")

	h.checkout(base)
	if got := h.read("a.txt"); got != "main" {
		t.Errorf("Expected main content, got %q", got)
	}

	h.checkout("feature")
	if got := h.read("a.txt"); got != "feature" {
		t.Errorf("Expected feature content, got %q", got)
	}

	branches, err := h.svc.ListBranches(h.ctx(), h.target)
	if err != nil {
		t.Fatalf("ListBranches failed: %v", err)
	}
	for _, b := range branches {
		if b.Current != (b.Name == "feature") {
			t.Errorf("Unexpected Current=%v for branch %s", b.Current, b.Name)
		}
	}
}

func TestService_Checkout_Conflict(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a", "initial commit")
	h.branch("feature")

	h.write("a.txt", "dirty")
	h.write("untracked.txt", "fine")

	_, err := h.svc.Checkout(h.ctx(), h.target, "feature")

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("Expected ConflictError to match ErrConflict")
	}
	assertPaths(t, "Conflicts", conflict.Paths, "a.txt")

	if got := h.read("a.txt"); got != "dirty" {
		t.Errorf("Expected local change to be kept, got %q", got)
	}
}

func TestService_Checkout_UntrackedConflict(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a\n", "initial commit")
	base := h.current()

	h.branch("feature")
	h.checkout("feature")
	h.commitFile("b.txt", "from feature\n", "add b")
	h.commitFile("docs", "from feature\n", "add docs file")
	h.checkout(base)

	h.write("b.txt", "untracked work\n")
	h.write("docs/notes.txt", "untracked below a feature file\n")
	h.write("other.txt", "unrelated\n")

	_, err := h.svc.Checkout(h.ctx(), h.target, "feature")

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
	assertPaths(t, "Conflicts", conflict.Paths, "b.txt", "docs/notes.txt")

	if got := h.read("b.txt"); got != "untracked work\n" {
		t.Errorf("Expected untracked file to be kept, got %q", got)
	}
	if h.current() != base {
		t.Errorf("Expected to stay on %s, got %s", base, h.current())
	}

	h.remove("b.txt")
	h.remove("docs/notes.txt")
	h.remove("docs")
	h.checkout("feature")
	if got := h.read("other.txt"); got != "unrelated\n" {
		t.Errorf("Expected unrelated untracked file to survive checkout, got %q", got)
	}
}

func TestService_Checkout_Unknown(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a", "initial commit")

	_, err := h.svc.Checkout(h.ctx(), h.target, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestService_DeleteBranch(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a", "initial commit")
	h.branch("feature")

	if err := h.svc.DeleteBranch(h.ctx(), h.target, h.current()); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation when deleting the current branch, got %v", err)
	}
	if err := h.svc.DeleteBranch(h.ctx(), h.target, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := h.svc.DeleteBranch(h.ctx(), h.target, "feature"); err != nil {
		t.Fatalf("DeleteBranch failed: %v", err)
	}

	branches, err := h.svc.ListBranches(h.ctx(), h.target)
	if err != nil {
		t.Fatalf("ListBranches failed: %v", err)
	}
	for _, b := range branches {
		if b.Name == "feature" {
			t.Error("Deleted branch still listed")
		}
	}
}
