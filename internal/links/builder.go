package links

import (
	"net/url"
	"strings"
)

// Git is the set of git sub-resource URIs of a project or path.
type Git struct {
	IndexURI  string `json:"GitIndexURI"`
	StatusURI string `json:"GitStatusURI"`
	HeadURI   string `json:"GitHeadURI"`
	RemoteURI string `json:"GitRemoteURI"`
	BranchURI string `json:"GitBranchURI"`
	TagURI    string `json:"GitTagURI"`
	CommitURI string `json:"GitCommitURI"`
}

// Entry is the link set of a single path in a status snapshot.
type Entry struct {
	Name     string `json:"Name"`
	Location string `json:"Location"`
	Git      Git    `json:"Git"`
}

// Builder produces canonical resource URIs below a base path.
type Builder struct {
	basePath string
}

// NewBuilder creates a new Builder.
func NewBuilder(basePath string) *Builder {
	return &Builder{basePath: strings.TrimSuffix(basePath, "/")}
}

// Project returns the git links of a project root.
func (b *Builder) Project(project string) Git {
	return b.Path(project, "")
}

// Path returns the git links of a project-relative path. Folders end with "/".
func (b *Builder) Path(project, path string) Git {
	return Git{
		IndexURI:  b.git("index", project, path),
		StatusURI: b.git("status", project, path),
		HeadURI:   b.Commit(project, "HEAD", path),
		RemoteURI: b.git("remote", project, ""),
		BranchURI: b.git("branch", project, ""),
		TagURI:    b.git("tag", project, ""),
		CommitURI: b.git("commit", project, path),
	}
}

// Entry returns the status entry links of path.
func (b *Builder) Entry(project, path string) Entry {
	return Entry{
		Name:     path,
		Location: b.File(project, path),
		Git:      b.Path(project, path),
	}
}

// File returns the file resource URI of path. File contents are served
// outside the gateway.
func (b *Builder) File(project, path string) string {
	return b.basePath + "/file/" + escapeSegment(project) + "/" + escapePath(path)
}

// Commit returns the commit log URI of ref, optionally narrowed to path.
func (b *Builder) Commit(project, ref, path string) string {
	return b.git("commit/"+escapeSegment(ref), project, path)
}

// Branch returns the URI of a local branch.
func (b *Builder) Branch(project, name string) string {
	return b.git("branch/"+escapeSegment(name), project, "")
}

// Remote returns the URI of a remote.
func (b *Builder) Remote(project, remote string) string {
	return b.git("remote/"+escapeSegment(remote), project, "")
}

// RemoteBranch returns the URI of a remote-tracking branch.
func (b *Builder) RemoteBranch(project, remote, branch string) string {
	return b.git("remote/"+escapeSegment(remote)+"/"+escapeSegment(branch), project, "")
}

// Tag returns the tag collection URI of a project.
func (b *Builder) Tag(project string) string {
	return b.git("tag", project, "")
}

// ProjectURI returns the URI of a project resource.
func (b *Builder) ProjectURI(project string) string {
	return b.basePath + "/projects/" + escapeSegment(project)
}

// Task returns the URI of an operation log entry.
func (b *Builder) Task(id string) string {
	return b.basePath + "/tasks/" + escapeSegment(id)
}

func (b *Builder) git(resource, project, path string) string {
	return b.basePath + "/git/" + resource + "/file/" + escapeSegment(project) + "/" + escapePath(path)
}

// escapeSegment escapes a single path segment, slashes included, so that
// names like "feature/x" stay one segment.
func escapeSegment(s string) string {
	return url.PathEscape(s)
}

// escapePath escapes every segment of a slash separated path.
func escapePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return ""
	}

	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	return strings.Join(segments, "/")
}
