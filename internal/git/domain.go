package git

import "time"

// Category classifies a path on one of the two status axes.
type Category string

const (
	// index vs HEAD
	CategoryAdded   Category = "added"
	CategoryChanged Category = "changed"
	CategoryRemoved Category = "removed"

	// working tree vs index
	CategoryModified  Category = "modified"
	CategoryMissing   Category = "missing"
	CategoryUntracked Category = "untracked"
)

// Status is a point-in-time status snapshot. Each slice is sorted by path.
type Status struct {
	Added   []string
	Changed []string
	Removed []string

	Modified  []string
	Missing   []string
	Untracked []string
}

// IsClean reports whether no tracked file differs from HEAD. Untracked files
// do not count.
func (s *Status) IsClean() bool {
	return len(s.Added)+len(s.Changed)+len(s.Removed)+len(s.Modified)+len(s.Missing) == 0
}

// Severity is the aggregate severity of an operation outcome.
type Severity string

const (
	SeverityOK      Severity = "OK"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// PushStatus is the outcome of a single remote ref update.
type PushStatus string

const (
	PushOK                     PushStatus = "OK"
	PushUpToDate               PushStatus = "UP_TO_DATE"
	PushRejectedNonFastForward PushStatus = "REJECTED_NONFASTFORWARD"
	PushRejectedNoDelete       PushStatus = "REJECTED_NODELETE"
	PushRejectedOtherReason    PushStatus = "REJECTED_OTHER_REASON"
	PushNonExisting            PushStatus = "NON_EXISTING"
	PushNotAttempted           PushStatus = "NOT_ATTEMPTED"
)

func (s PushStatus) severity() Severity {
	switch s {
	case PushOK, PushUpToDate:
		return SeverityOK
	case PushNotAttempted:
		return SeverityError
	default:
		return SeverityWarning
	}
}

// RefUpdate describes the outcome of one remote ref update.
type RefUpdate struct {
	LocalRef      string
	RemoteRef     string
	NewID         string
	ExpectedOldID string // Remote tip as last seen locally
	RemoteOldID   string // Remote tip at the moment of the update
	Status        PushStatus
	Message       string
}

// PushResult is the aggregate outcome of a push.
type PushResult struct {
	Severity Severity
	Message  string
	Updates  []RefUpdate
}

// MergeStatus classifies the outcome of a merge.
type MergeStatus string

const (
	MergeFastForward     MergeStatus = "FAST_FORWARD"
	MergeAlreadyUpToDate MergeStatus = "ALREADY_UP_TO_DATE"
	MergeMerged          MergeStatus = "MERGED"
	MergeConflicting     MergeStatus = "CONFLICTING"
	MergeFailed          MergeStatus = "FAILED"
	MergeNotSupported    MergeStatus = "NOT_SUPPORTED"
)

// MergeResult is the outcome of a merge.
type MergeResult struct {
	Status    MergeStatus
	Head      string   // HEAD after the merge
	Conflicts []string // Conflicting paths, or the untracked paths that blocked the merge
	Message   string
}

// CommitInfo represents a commit in the log.
type CommitInfo struct {
	ID          string
	Message     string
	AuthorName  string
	AuthorEmail string
	Time        time.Time
	Parents     []string
}

// BranchInfo represents information about a local branch.
type BranchInfo struct {
	Name    string
	ID      string
	Current bool
	Remote  string // Tracked remote, if any
	Merge   string // Tracked remote branch, if any
}

// TagInfo represents information about a tag.
type TagInfo struct {
	Name      string
	ID        string // Commit the tag points to
	Annotated bool
	Message   string
}

// RemoteInfo represents a configured remote.
type RemoteInfo struct {
	Name string
	URLs []string
}

// RemoteRef is a remote-tracking branch.
type RemoteRef struct {
	Remote        string
	Name          string // Branch name on the remote
	ID            string
	URI           string
	TrackedBranch string // Local branch tracking this ref, if any
}

// Credentials holds request-scoped SSH credentials.
type Credentials struct {
	Username   string
	KnownHosts string
	PrivateKey []byte
	PublicKey  []byte
	Passphrase []byte
}
