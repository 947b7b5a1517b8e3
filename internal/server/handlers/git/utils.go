package git

import (
	"net/url"
	"strings"

	"github.com/apiarycd/gitgate/internal/git"
	"github.com/apiarycd/gitgate/internal/links"
	"github.com/apiarycd/gitgate/internal/projects"
	"github.com/gofiber/fiber/v2"
)

const headRef = "HEAD"

// param returns an unescaped copy of a route parameter. Fiber parameters
// point into the request buffer, so they are copied before they can outlive
// the handler.
func param(c *fiber.Ctx, key string) (string, error) {
	value, err := url.PathUnescape(c.Params(key))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return strings.Clone(value), nil
}

// target resolves the project of the request and the project-relative path.
func (h *Handler) target(c *fiber.Ctx) (*projects.Project, string, error) {
	name, err := param(c, "project")
	if err != nil {
		return nil, "", err
	}

	path, err := param(c, "*")
	if err != nil {
		return nil, "", err
	}

	project, err := h.projectsSvc.Resolve(c.Context(), name)
	if err != nil {
		return nil, "", err
	}

	return project, path, nil
}

func remoteBranch(c *fiber.Ctx) (string, string, error) {
	remote, err := param(c, "remote")
	if err != nil {
		return "", "", err
	}

	branch, err := param(c, "branch")
	if err != nil {
		return "", "", err
	}

	return remote, branch, nil
}

func (h *Handler) entries(project string, paths []string) []links.Entry {
	entries := make([]links.Entry, len(paths))
	for i, path := range paths {
		entries[i] = h.links.Entry(project, path)
	}

	return entries
}

func (h *Handler) toStatusResponse(project *projects.Project, path string, status *git.Status) StatusResponse {
	id := project.ID.String()

	return StatusResponse{
		Added:   h.entries(id, status.Added),
		Changed: h.entries(id, status.Changed),
		Removed: h.entries(id, status.Removed),

		Modified:  h.entries(id, status.Modified),
		Missing:   h.entries(id, status.Missing),
		Untracked: h.entries(id, status.Untracked),

		Git: h.links.Path(id, path),
	}
}

func (h *Handler) toCommitResponse(project string, commit *git.CommitInfo) CommitResponse {
	parents := commit.Parents
	if parents == nil {
		parents = []string{}
	}

	return CommitResponse{
		ID:          commit.ID,
		Message:     commit.Message,
		AuthorName:  commit.AuthorName,
		AuthorEmail: commit.AuthorEmail,
		Time:        commit.Time,
		Parents:     parents,
		Location:    h.links.Commit(project, commit.ID, ""),
	}
}

func (h *Handler) toBranchResponse(project string, branch *git.BranchInfo) BranchResponse {
	response := BranchResponse{
		Name:           branch.Name,
		ID:             branch.ID,
		Current:        branch.Current,
		Location:       h.links.Branch(project, branch.Name),
		CommitLocation: h.links.Commit(project, branch.Name, ""),
	}
	if branch.Remote != "" && branch.Merge != "" {
		response.RemoteLocation = h.links.RemoteBranch(project, branch.Remote, branch.Merge)
	}

	return response
}

func (h *Handler) toTagResponse(project string, tag *git.TagInfo) TagResponse {
	return TagResponse{
		Name:           tag.Name,
		ID:             tag.ID,
		Annotated:      tag.Annotated,
		Message:        tag.Message,
		CommitLocation: h.links.Commit(project, tag.ID, ""),
	}
}

func (h *Handler) toRemoteBranchResponse(project string, ref *git.RemoteRef) RemoteBranchResponse {
	return RemoteBranchResponse{
		Name:           ref.Remote + "/" + ref.Name,
		ID:             ref.ID,
		URI:            ref.URI,
		TrackedBranch:  ref.TrackedBranch,
		Location:       h.links.RemoteBranch(project, ref.Remote, ref.Name),
		CommitLocation: h.links.Commit(project, ref.Remote+"/"+ref.Name, ""),
	}
}
