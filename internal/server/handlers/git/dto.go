package git

import (
	"time"

	"github.com/apiarycd/gitgate/internal/git"
	"github.com/apiarycd/gitgate/internal/links"
)

// StatusResponse represents a status snapshot. Every entry carries its links.
type StatusResponse struct {
	Added   []links.Entry `json:"Added"`
	Changed []links.Entry `json:"Changed"`
	Removed []links.Entry `json:"Removed"`

	Modified  []links.Entry `json:"Modified"`
	Missing   []links.Entry `json:"Missing"`
	Untracked []links.Entry `json:"Untracked"`

	Git links.Git `json:"Git"`
}

// CommitRequest represents the request payload for a commit or a merge.
type CommitRequest struct {
	Message     string `json:"Message"     validate:"max=65536"`
	Amend       bool   `json:"Amend"`
	AuthorName  string `json:"AuthorName"  validate:"omitempty,max=255"`
	AuthorEmail string `json:"AuthorEmail" validate:"omitempty,email"`

	// Merge names the ref to merge into HEAD; no commit is created from the message
	Merge string `json:"Merge" validate:"omitempty,max=255"`
}

// CommitResponse represents a commit.
type CommitResponse struct {
	ID          string    `json:"Id"`
	Message     string    `json:"Message"`
	AuthorName  string    `json:"AuthorName"`
	AuthorEmail string    `json:"AuthorEmail"`
	Time        time.Time `json:"Time"`
	Parents     []string  `json:"Parents"`
	Location    string    `json:"Location"`
}

// LogResponse represents a commit log.
type LogResponse struct {
	Children []CommitResponse `json:"Children"`
	// RemoteLocation links the remote branch tracked by the current branch
	RemoteLocation string `json:"RemoteLocation,omitempty"`
	Location       string `json:"Location"`
}

// MergeResponse represents the outcome of a merge.
type MergeResponse struct {
	Result    string   `json:"Result"`
	ID        string   `json:"Id,omitempty"`
	Conflicts []string `json:"Conflicts,omitempty"`
	Message   string   `json:"Message,omitempty"`
}

// BranchRequest represents the request payload for creating a branch.
type BranchRequest struct {
	Name       string `json:"Name"       validate:"required,min=1,max=255"`
	StartPoint string `json:"StartPoint" validate:"omitempty,max=255"`
	// Remote is the remote branch to track, as "<remote>/<branch>"
	Remote string `json:"Remote" validate:"omitempty,max=255"`
}

// BranchResponse represents a local branch.
type BranchResponse struct {
	Name           string `json:"Name"`
	ID             string `json:"Id"`
	Current        bool   `json:"Current"`
	Location       string `json:"Location"`
	CommitLocation string `json:"CommitLocation"`
	RemoteLocation string `json:"RemoteLocation,omitempty"`
}

// BranchListResponse represents the local branches.
type BranchListResponse struct {
	Children []BranchResponse `json:"Children"`
}

// TagRequest represents the request payload for creating a tag.
type TagRequest struct {
	Name      string `json:"Name"      validate:"required,min=1,max=255"`
	TargetRef string `json:"TargetRef" validate:"omitempty,max=255"`
	Message   string `json:"Message"   validate:"max=65536"`
}

// TagResponse represents a tag.
type TagResponse struct {
	Name           string `json:"Name"`
	ID             string `json:"Id"`
	Annotated      bool   `json:"Annotated"`
	Message        string `json:"Message,omitempty"`
	CommitLocation string `json:"CommitLocation"`
}

// TagListResponse represents the tags.
type TagListResponse struct {
	Children []TagResponse `json:"Children"`
}

// RemoteRequest represents the request payload for adding a remote.
type RemoteRequest struct {
	Name string `json:"Name" validate:"required,min=1,max=255"`
	URI  string `json:"URI"  validate:"required,max=2048"`
}

// RemoteResponse represents a configured remote.
type RemoteResponse struct {
	Name     string   `json:"Name"`
	URLs     []string `json:"GitUrl"`
	Location string   `json:"Location"`
}

// RemoteListResponse represents the configured remotes.
type RemoteListResponse struct {
	Children []RemoteResponse `json:"Children"`
}

// RemoteBranchResponse represents a remote-tracking branch.
type RemoteBranchResponse struct {
	Name           string `json:"Name"`
	ID             string `json:"Id"`
	URI            string `json:"GitUrl"`
	TrackedBranch  string `json:"TrackedBranch,omitempty"`
	Location       string `json:"Location"`
	CommitLocation string `json:"CommitLocation"`
}

// RemoteBranchListResponse represents the branches of a remote.
type RemoteBranchListResponse struct {
	Children []RemoteBranchResponse `json:"Children"`
}

// RemoteBranchRequest represents the request payload for a push, or a fetch
// when Fetch is set.
type RemoteBranchRequest struct {
	Fetch bool `json:"Fetch"`

	PushSrcRef string `json:"PushSrcRef" validate:"required_without_all=Fetch Delete,max=255"`
	PushTags   bool   `json:"PushTags"`
	// Delete removes the remote branch instead of updating it
	Delete bool `json:"Delete"`

	// SSH credentials, used for this call only
	Name       string `json:"Name"`
	KnownHosts string `json:"KnownHosts"`
	PrivateKey string `json:"PrivateKey"`
	PublicKey  string `json:"PublicKey"`
	Passphrase string `json:"Passphrase"`
}

// TaskResponse represents a queued remote operation.
type TaskResponse struct {
	ID       string `json:"Id"`
	Kind     string `json:"Kind"`
	Status   string `json:"Status"`
	Location string `json:"Location"`
}

// ConflictResponse is the body of a refused operation that would discard
// local changes.
type ConflictResponse struct {
	Severity  string   `json:"Severity"`
	Message   string   `json:"Message"`
	Conflicts []string `json:"Conflicts"`
}

func (r *RemoteBranchRequest) credentials() *git.Credentials {
	if r.PrivateKey == "" && r.Name == "" {
		return nil
	}

	return &git.Credentials{
		Username:   r.Name,
		KnownHosts: r.KnownHosts,
		PrivateKey: []byte(r.PrivateKey),
		PublicKey:  []byte(r.PublicKey),
		Passphrase: []byte(r.Passphrase),
	}
}
