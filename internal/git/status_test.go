package git

import (
	"errors"
	"slices"
	"testing"
)

func assertPaths(t *testing.T, category string, got []string, want ...string) {
	t.Helper()

	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !slices.Equal(got, want) {
		t.Errorf("%s = %v, want %v", category, got, want)
	}
}

func TestService_Status_EmptyRepository(t *testing.T) {
	h := newHarness(t)

	status := h.status("")
	if !status.IsClean() || len(status.Untracked) != 0 {
		t.Errorf("Expected clean status for an empty repository, got %+v", status)
	}

	h.write("a.txt", "a")
	h.write("b.txt", "b")
	h.stage("a.txt")

	status = h.status("")
	assertPaths(t, "Added", status.Added, "a.txt")
	assertPaths(t, "Untracked", status.Untracked, "b.txt")
	assertPaths(t, "Changed", status.Changed)
	assertPaths(t, "Modified", status.Modified)
}

func TestService_Status_Axes(t *testing.T) {
	h := newHarness(t)
	h.write("keep.txt", "keep")
	h.write("edit.txt", "v1")
	h.write("gone.txt", "gone")
	h.stage("")
	h.commit("initial commit")

	h.write("edit.txt", "v2")
	h.remove("gone.txt")
	h.write("new.txt", "new")

	status := h.status("")
	assertPaths(t, "Modified", status.Modified, "edit.txt")
	assertPaths(t, "Missing", status.Missing, "gone.txt")
	assertPaths(t, "Untracked", status.Untracked, "new.txt")
	assertPaths(t, "Changed", status.Changed)
	assertPaths(t, "Removed", status.Removed)

	h.stage("")

	status = h.status("")
	assertPaths(t, "Added", status.Added, "new.txt")
	assertPaths(t, "Changed", status.Changed, "edit.txt")
	assertPaths(t, "Removed", status.Removed, "gone.txt")
	assertPaths(t, "Modified", status.Modified)
	assertPaths(t, "Missing", status.Missing)
	assertPaths(t, "Untracked", status.Untracked)

	// staged, then edited again: both axes report the path
	h.write("edit.txt", "v3")

	status = h.status("")
	assertPaths(t, "Changed", status.Changed, "edit.txt")
	assertPaths(t, "Modified", status.Modified, "edit.txt")
}

func TestService_Status_RemovedAndUntracked(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a", "initial commit")

	h.remove("a.txt")
	h.stage("a.txt")
	h.write("a.txt", "a again")

	status := h.status("")
	assertPaths(t, "Removed", status.Removed, "a.txt")
	assertPaths(t, "Untracked", status.Untracked, "a.txt")
}

func TestService_Status_Scope(t *testing.T) {
	h := newHarness(t)
	h.write("src/main.go", "package main")
	h.write("src/util/util.go", "package util")
	h.write("docs/readme.md", "# readme")
	h.write("srcfile.txt", "not in src/")

	tests := []struct {
		name  string
		scope string
		want  []string
	}{
		{name: "everything", scope: "", want: []string{"docs/readme.md", "src/main.go", "src/util/util.go", "srcfile.txt"}},
		{name: "folder", scope: "src/", want: []string{"src/main.go", "src/util/util.go"}},
		{name: "folder without slash", scope: "src", want: []string{"src/main.go", "src/util/util.go"}},
		{name: "nested folder", scope: "src/util/", want: []string{"src/util/util.go"}},
		{name: "file", scope: "docs/readme.md", want: []string{"docs/readme.md"}},
		{name: "leading slash", scope: "/docs/readme.md", want: []string{"docs/readme.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPaths(t, "Untracked", h.status(tt.scope).Untracked, tt.want...)
		})
	}
}

func TestService_Status_UnknownScope(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a", "initial commit")

	_, err := h.svc.Status(h.ctx(), h.target, "missing/")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestService_Status_Ignored(t *testing.T) {
	h := newHarness(t)
	h.write("tracked.log", "v1")
	h.stage("tracked.log")
	h.write(".gitignore", "*.log\nbuild/\n")
	h.stage(".gitignore")
	h.commit("initial commit")

	h.write("debug.log", "noise")
	h.write("build/out.bin", "noise")
	h.write("tracked.log", "v2")

	status := h.status("")
	assertPaths(t, "Untracked", status.Untracked)
	assertPaths(t, "Modified", status.Modified, "tracked.log")
}

func TestStatus_IsClean(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{name: "empty", status: Status{}, want: true},
		{name: "untracked only", status: Status{Untracked: []string{"a"}}, want: true},
		{name: "added", status: Status{Added: []string{"a"}}, want: false},
		{name: "modified", status: Status{Modified: []string{"a"}}, want: false},
		{name: "missing", status: Status{Missing: []string{"a"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsClean(); got != tt.want {
				t.Errorf("IsClean() = %v, want %v", got, tt.want)
			}
		})
	}
}
