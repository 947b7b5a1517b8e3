package git

import "github.com/go-git/go-git/v6/plumbing"

// Target identifies the repository of a project.
type Target struct {
	ID  string // Project ID, the arena key
	Dir string // Working tree directory
}

// CloneRequest represents the request to clone a repository.
type CloneRequest struct {
	URL         string // Git repository URL
	Branch      string // Branch to check out (optional, defaults to remote HEAD)
	Directory   string // Directory to clone into
	Credentials *Credentials
}

// CommitRequest represents the request to create a commit.
type CommitRequest struct {
	Message     string
	Amend       bool
	AuthorName  string
	AuthorEmail string
}

// BranchCreateRequest represents the request to create a branch.
type BranchCreateRequest struct {
	Name        string
	StartPoint  string // Revision to start from (optional, defaults to HEAD)
	TrackRemote string // Remote branch to track, e.g. "origin/feature" (optional)
}

// TagCreateRequest represents the request to create a tag.
type TagCreateRequest struct {
	Name      string
	TargetRef string // Revision to tag (optional, defaults to HEAD)
	Message   string // Creates an annotated tag when set
}

// PushRequest represents the request to push a ref to a remote branch.
type PushRequest struct {
	Remote      string
	Branch      string // Remote branch to update
	SrcRef      string // Local revision to push; empty deletes the remote branch
	Delete      bool
	IncludeTags bool
	Credentials *Credentials
}

// FetchRequest represents the request to fetch from a remote.
type FetchRequest struct {
	Remote      string
	Branch      string // Fetch only this branch (optional)
	Credentials *Credentials
}

// refUpdate is a planned remote ref update.
type refUpdate struct {
	local  plumbing.ReferenceName
	remote plumbing.ReferenceName
	hash   plumbing.Hash
	update *RefUpdate
}
