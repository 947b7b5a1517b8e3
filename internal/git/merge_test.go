package git

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-git/go-git/v6/plumbing/filemode"
)

// diverged commits base content on the current branch, then one change on
// feature and one on the current branch.
func diverged(t *testing.T, base, ours, theirs string) (*harness, string) {
	t.Helper()

	h := newHarness(t)
	h.commitFile("a.txt", base, "base")
	branch := h.current()

	h.branch("feature")
	h.checkout("feature")
	h.commitFile("a.txt", theirs, "theirs")

	h.checkout(branch)
	h.commitFile("a.txt", ours, "ours")

	return h, branch
}

func TestService_Merge_FastForward(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a\n", "base")
	base := h.current()

	h.branch("feature")
	h.checkout("feature")
	tip := h.commitFile("b.txt", "b\n", "feature")
	h.checkout(base)

	result, err := h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeFastForward {
		t.Errorf("Expected %s, got %s", MergeFastForward, result.Status)
	}
	if result.Head != tip || h.head() != tip {
		t.Errorf("Expected HEAD at %s, got %s", tip, h.head())
	}
	if got := h.read("b.txt"); got != "b\n" {
		t.Errorf("Expected b.txt in the working tree, got %q", got)
	}
	if h.current() != base {
		t.Errorf("Expected to stay on %s, got %s", base, h.current())
	}
}

func TestService_Merge_AlreadyUpToDate(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a\n", "base")
	h.branch("feature")
	head := h.commitFile("a.txt", "b\n", "ahead")

	result, err := h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeAlreadyUpToDate {
		t.Errorf("Expected %s, got %s", MergeAlreadyUpToDate, result.Status)
	}
	if result.Head != head {
		t.Errorf("Expected HEAD %s, got %s", head, result.Head)
	}
}

func TestService_Merge_Merged(t *testing.T) {
	h, branch := diverged(t, "1\n2\n3\n4\n5\n", "1\n2\n3\n4\nfive\n", "one\n2\n3\n4\n5\n")
	ours := h.head()

	h.checkout("feature")
	theirs := h.commitFile("b.txt", "b\n", "feature only")
	h.checkout(branch)

	result, err := h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeMerged {
		t.Fatalf("Expected %s, got %+v", MergeMerged, result)
	}

	if got := h.read("a.txt"); got != "one\n2\n3\n4\nfive\n" {
		t.Errorf("Unexpected merged content %q", got)
	}
	if got := h.read("b.txt"); got != "b\n" {
		t.Errorf("Expected b.txt from feature, got %q", got)
	}
	if !h.status("").IsClean() {
		t.Errorf("Expected a clean tree after merge, got %+v", h.status(""))
	}

	log, err := h.svc.Log(h.ctx(), h.target, "HEAD", "", 1)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if log[0].ID != result.Head {
		t.Errorf("Expected HEAD %s, got %s", result.Head, log[0].ID)
	}
	if len(log[0].Parents) != 2 || log[0].Parents[0] != ours || log[0].Parents[1] != theirs {
		t.Errorf("Expected parents [%s %s], got %v", ours, theirs, log[0].Parents)
	}
}

func TestService_Merge_Conflicting(t *testing.T) {
	h, _ := diverged(t, "a\nb\nc\n", "a\nours\nc\n", "a\ntheirs\nc\n")
	head := h.head()

	result, err := h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeConflicting {
		t.Fatalf("Expected %s, got %+v", MergeConflicting, result)
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0] != "a.txt" {
		t.Errorf("Expected conflict on a.txt, got %v", result.Conflicts)
	}
	if h.head() != head {
		t.Errorf("Expected HEAD to stay at %s, got %s", head, h.head())
	}

	want := "a\n<<<<<<< HEAD\nours\n=======\ntheirs\n>>>>>>> feature\nc\n"
	if got := h.read("a.txt"); got != want {
		t.Errorf("Expected conflict markers\n%s\ngot\n%s", want, got)
	}

	status := h.status("")
	assertPaths(t, "modified", status.Modified, "a.txt")
}

func TestService_Merge_ConflictResolution(t *testing.T) {
	h, _ := diverged(t, "a\nb\nc\n", "a\nours\nc\n", "a\ntheirs\nc\n")
	ours := h.head()

	theirs, err := h.handle().resolve("feature")
	if err != nil {
		t.Fatal(err)
	}

	result, err := h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeConflicting {
		t.Fatalf("Expected %s, got %+v", MergeConflicting, result)
	}

	pending, ok := h.handle().mergeHead()
	if !ok || pending != theirs {
		t.Fatalf("Expected MERGE_HEAD at %s, got %s (%v)", theirs, pending, ok)
	}

	h.write("a.txt", "a\nresolved\nc\n")
	h.stage("a.txt")

	info, err := h.svc.Commit(h.ctx(), h.target, CommitRequest{Message: "resolve"})
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(info.Parents) != 2 || info.Parents[0] != ours || info.Parents[1] != theirs.String() {
		t.Errorf("Expected parents [%s %s], got %v", ours, theirs, info.Parents)
	}
	if _, ok := h.handle().mergeHead(); ok {
		t.Error("Expected MERGE_HEAD to be cleared by the commit")
	}

	again, err := h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if again.Status != MergeAlreadyUpToDate {
		t.Errorf("Expected %s after resolution, got %s", MergeAlreadyUpToDate, again.Status)
	}

	next, err := h.svc.Commit(h.ctx(), h.target, CommitRequest{Message: "empty"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for an empty commit after the merge, got %+v, %v", next, err)
	}
}

func TestService_Merge_UntrackedFastForward(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a\n", "base")
	base := h.current()
	head := h.head()

	h.branch("feature")
	h.checkout("feature")
	h.commitFile("b.txt", "from feature\n", "feature")
	h.checkout(base)

	h.write("b.txt", "untracked work\n")

	result, err := h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeFailed {
		t.Fatalf("Expected %s, got %+v", MergeFailed, result)
	}
	assertPaths(t, "Conflicts", result.Conflicts, "b.txt")
	if h.head() != head {
		t.Errorf("Expected HEAD to stay at %s, got %s", head, h.head())
	}
	if got := h.read("b.txt"); got != "untracked work\n" {
		t.Errorf("Expected untracked file to be kept, got %q", got)
	}
}

func TestService_Merge_UntrackedThreeWay(t *testing.T) {
	h, branch := diverged(t, "1\n2\n3\n", "1\n2\nthree\n", "one\n2\n3\n")
	head := h.head()

	h.checkout("feature")
	h.commitFile("c.txt", "feature c\n", "add c")
	h.checkout(branch)

	h.write("c.txt", "untracked work\n")
	h.write("d.txt", "unrelated\n")

	result, err := h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeFailed {
		t.Fatalf("Expected %s, got %+v", MergeFailed, result)
	}
	assertPaths(t, "Conflicts", result.Conflicts, "c.txt")
	if h.head() != head {
		t.Errorf("Expected HEAD to stay at %s, got %s", head, h.head())
	}
	if got := h.read("c.txt"); got != "untracked work\n" {
		t.Errorf("Expected untracked file to be kept, got %q", got)
	}
	if got := h.read("a.txt"); got != "1\n2\nthree\n" {
		t.Errorf("Expected a.txt to be left alone, got %q", got)
	}

	h.remove("c.txt")

	result, err = h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeMerged {
		t.Fatalf("Expected %s, got %+v", MergeMerged, result)
	}
	if got := h.read("d.txt"); got != "unrelated\n" {
		t.Errorf("Expected unrelated untracked file to survive, got %q", got)
	}
}

func TestOverwritten(t *testing.T) {
	regular := fileState{mode: filemode.Regular}

	from := map[string]fileState{"same.txt": regular}
	to := map[string]fileState{
		"same.txt":  regular,
		"new.txt":   regular,
		"dir/x.txt": regular,
		"file":      regular,
	}

	got := overwritten([]string{"dir", "file/y.txt", "new.txt", "other.txt", "same.txt"}, from, to)
	assertPaths(t, "overwritten", got, "dir", "file/y.txt", "new.txt")
}

func TestService_Merge_Refused(t *testing.T) {
	h, _ := diverged(t, "a\n", "b\n", "c\n")
	h.write("a.txt", "dirty\n")

	result, err := h.svc.Merge(h.ctx(), h.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeFailed {
		t.Errorf("Expected %s, got %s", MergeFailed, result.Status)
	}
	if got := h.read("a.txt"); got != "dirty\n" {
		t.Errorf("Expected local change to survive, got %q", got)
	}

	empty := newHarness(t)
	empty.write("a.txt", "a\n")

	result, err = empty.svc.Merge(empty.ctx(), empty.target, "feature")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if result.Status != MergeNotSupported {
		t.Errorf("Expected %s, got %s", MergeNotSupported, result.Status)
	}
}

func TestService_Merge_Errors(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a\n", "base")

	if _, err := h.svc.Merge(h.ctx(), h.target, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
	if _, err := h.svc.Merge(h.ctx(), h.target, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMerge3(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		ours     string
		theirs   string
		want     string
		conflict bool
	}{
		{
			name: "unchanged",
			base: "a\nb\n", ours: "a\nb\n", theirs: "a\nb\n",
			want: "a\nb\n",
		},
		{
			name: "ours only",
			base: "a\nb\nc\n", ours: "a\nB\nc\n", theirs: "a\nb\nc\n",
			want: "a\nB\nc\n",
		},
		{
			name: "theirs only",
			base: "a\nb\nc\n", ours: "a\nb\nc\n", theirs: "a\nb\nc\nd\n",
			want: "a\nb\nc\nd\n",
		},
		{
			name: "separate changes",
			base: "1\n2\n3\n4\n5\n", ours: "one\n2\n3\n4\n5\n", theirs: "1\n2\n3\n4\nfive\n",
			want: "one\n2\n3\n4\nfive\n",
		},
		{
			name: "same change",
			base: "a\nb\nc\n", ours: "a\nX\nc\n", theirs: "a\nX\nc\n",
			want: "a\nX\nc\n",
		},
		{
			name: "deletion",
			base: "a\nb\nc\n", ours: "a\nc\n", theirs: "a\nb\nc\n",
			want: "a\nc\n",
		},
		{
			name: "overlapping",
			base: "a\nb\nc\n", ours: "a\nB\nc\n", theirs: "a\nX\nc\n",
			want:     "a\n<<<<<<< HEAD\nB\n=======\nX\n>>>>>>> feature\nc\n",
			conflict: true,
		},
		{
			name: "touching",
			base: "1\n2\n3\n4\n", ours: "1\nTWO\n3\n4\n", theirs: "1\n2\nTHREE\n4\n",
			want:     "1\n<<<<<<< HEAD\nTWO\n3\n=======\n2\nTHREE\n>>>>>>> feature\n4\n",
			conflict: true,
		},
		{
			name: "insertions at the same line",
			base: "a\nb\n", ours: "a\nx\nb\n", theirs: "a\ny\nb\n",
			want:     "a\n<<<<<<< HEAD\nx\n=======\ny\n>>>>>>> feature\nb\n",
			conflict: true,
		},
		{
			name: "missing final newline",
			base: "a", ours: "b", theirs: "c",
			want:     "<<<<<<< HEAD\nb\n=======\nc\n>>>>>>> feature\n",
			conflict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, conflict := merge3(tt.base, tt.ours, tt.theirs, "feature")
			if conflict != tt.conflict {
				t.Errorf("Expected conflict %v, got %v", tt.conflict, conflict)
			}
			if got != tt.want {
				t.Errorf("Expected\n%q\ngot\n%q", tt.want, got)
			}
		})
	}
}

func TestIsBinary(t *testing.T) {
	if isBinary([]byte("plain text\n")) {
		t.Error("Expected text to not be binary")
	}
	if !isBinary([]byte("nul\x00byte")) {
		t.Error("Expected NUL byte to mark binary content")
	}
	if isBinary([]byte(strings.Repeat("a", 9000) + "\x00")) {
		t.Error("Expected only the leading bytes to be sniffed")
	}
}
