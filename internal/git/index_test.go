package git

import (
	"errors"
	"os"
	"testing"

	"github.com/go-git/go-git/v6/plumbing/filemode"
)

func TestService_Stage_Scope(t *testing.T) {
	h := newHarness(t)
	h.write("src/a.go", "a")
	h.write("src/b.go", "b")
	h.write("other.txt", "other")

	h.stage("src/")

	status := h.status("")
	assertPaths(t, "Added", status.Added, "src/a.go", "src/b.go")
	assertPaths(t, "Untracked", status.Untracked, "other.txt")
}

func TestService_StageAll(t *testing.T) {
	h := newHarness(t)
	h.write("a.txt", "a")
	h.write("b.txt", "b")
	h.stage("")
	h.commit("initial commit")

	h.write("a.txt", "a2")
	h.remove("b.txt")
	h.write("c.txt", "c")

	if err := h.svc.StageAll(h.ctx(), h.target); err != nil {
		t.Fatalf("StageAll failed: %v", err)
	}

	status := h.status("")
	assertPaths(t, "Changed", status.Changed, "a.txt")
	assertPaths(t, "Removed", status.Removed, "b.txt")
	assertPaths(t, "Added", status.Added, "c.txt")
	assertPaths(t, "Modified", status.Modified)
	assertPaths(t, "Missing", status.Missing)
	assertPaths(t, "Untracked", status.Untracked)
}

func TestService_Stage_UnknownPath(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a", "initial commit")

	err := h.svc.Stage(h.ctx(), h.target, "nope.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestService_Stage_Executable(t *testing.T) {
	h := newHarness(t)
	h.write("run.sh", "#!/bin/sh\n")
	if err := os.Chmod(h.path("run.sh"), 0o755); err != nil {
		t.Fatal(err)
	}

	h.stage("run.sh")

	idx, err := h.handle().repo.Storer.Index()
	if err != nil {
		t.Fatal(err)
	}
	entry, err := idx.Entry("run.sh")
	if err != nil {
		t.Fatalf("Expected run.sh in index: %v", err)
	}
	if entry.Mode != filemode.Executable {
		t.Errorf("Expected executable mode, got %v", entry.Mode)
	}

	status := h.status("")
	assertPaths(t, "Modified", status.Modified)
}

func TestService_Unstage(t *testing.T) {
	h := newHarness(t)
	h.write("a.txt", "a")
	h.write("b.txt", "b")
	h.stage("")
	h.commit("initial commit")

	h.write("a.txt", "a2")
	h.remove("b.txt")
	h.write("c.txt", "c")
	h.stage("")

	if err := h.svc.Unstage(h.ctx(), h.target, ""); err != nil {
		t.Fatalf("Unstage failed: %v", err)
	}

	status := h.status("")
	assertPaths(t, "Added", status.Added)
	assertPaths(t, "Changed", status.Changed)
	assertPaths(t, "Removed", status.Removed)
	assertPaths(t, "Modified", status.Modified, "a.txt")
	assertPaths(t, "Missing", status.Missing, "b.txt")
	assertPaths(t, "Untracked", status.Untracked, "c.txt")

	if got := h.read("a.txt"); got != "a2" {
		t.Errorf("Expected working tree to be kept, got %q", got)
	}
}

func TestService_Unstage_Scope(t *testing.T) {
	h := newHarness(t)
	h.write("a.txt", "a")
	h.write("b.txt", "b")
	h.stage("")

	if err := h.svc.Unstage(h.ctx(), h.target, "a.txt"); err != nil {
		t.Fatalf("Unstage failed: %v", err)
	}

	status := h.status("")
	assertPaths(t, "Added", status.Added, "b.txt")
	assertPaths(t, "Untracked", status.Untracked, "a.txt")
}
