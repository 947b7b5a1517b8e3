package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/apiarycd/gitgate/internal/git"
	"github.com/apiarycd/gitgate/internal/links"
	"github.com/apiarycd/gitgate/internal/projects"
	"github.com/apiarycd/gitgate/internal/server/protocol"
	"github.com/apiarycd/gitgate/internal/server/validation"
	"github.com/apiarycd/gitgate/internal/tasks"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	gitSvc      *git.Service
	projectsSvc *projects.Service
	tasksSvc    *tasks.Service
	links       *links.Builder

	protocol  protocol.Config
	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	gitSvc *git.Service,
	projectsSvc *projects.Service,
	tasksSvc *tasks.Service,
	links *links.Builder,
	protocol protocol.Config,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		gitSvc:      gitSvc,
		projectsSvc: projectsSvc,
		tasksSvc:    tasksSvc,
		links:       links,

		protocol:  protocol,
		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/git")

	r.Use(protocol.New(h.protocol))
	r.Use(h.errorsHandler)

	r.Get("/status/file/:project/*", h.getStatus)

	r.Put("/index/file/:project/*", h.putIndex)
	r.Delete("/index/file/:project/*", h.deleteIndex)

	r.Get("/commit/file/:project/*", h.getLog)
	r.Get("/commit/:ref/file/:project/*", h.getLog)
	r.Post("/commit/:ref/file/:project/*", validation.DecorateWithBodyEx(h.validator, h.postCommit))

	r.Get("/branch/file/:project/*", h.listBranches)
	r.Post("/branch/file/:project/*", validation.DecorateWithBodyEx(h.validator, h.postBranch))
	r.Put("/branch/:branch/file/:project/*", h.putBranch)
	r.Delete("/branch/:branch/file/:project/*", h.deleteBranch)

	r.Get("/tag/file/:project/*", h.listTags)
	r.Post("/tag/file/:project/*", validation.DecorateWithBodyEx(h.validator, h.postTag))

	r.Get("/remote/file/:project/*", h.listRemotes)
	r.Post("/remote/file/:project/*", validation.DecorateWithBodyEx(h.validator, h.postRemote))
	r.Get("/remote/:remote/file/:project/*", h.listRemoteBranches)
	r.Get("/remote/:remote/:branch/file/:project/*", h.getRemoteBranch)
	r.Post("/remote/:remote/:branch/file/:project/*", validation.DecorateWithBodyEx(h.validator, h.postRemoteBranch))
}

// getStatus returns the status of a project path
//
//	@Summary		Get status
//	@Description	Compare the working tree, the index and HEAD of a project, optionally scoped to a path
//	@Tags			git
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string	true	"Protocol version"
//	@Param			project					path		string	true	"Project ID or name"
//	@Param			path					path		string	false	"File or folder"
//	@Success		200						{object}	StatusResponse
//	@Failure		400						{object}	fiberfx.ErrorResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/status/file/{project}/{path} [get]
func (h *Handler) getStatus(c *fiber.Ctx) error {
	project, path, err := h.target(c)
	if err != nil {
		return err
	}

	status, err := h.gitSvc.Status(c.Context(), project.Target(), path)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	return c.JSON(h.toStatusResponse(project, path, status))
}

// putIndex stages a project path
//
//	@Summary		Stage changes
//	@Description	Stage the changes of a file or folder; an empty path stages everything
//	@Tags			git
//	@Param			Git-Protocol-Version	header	string	true	"Protocol version"
//	@Param			project					path	string	true	"Project ID or name"
//	@Param			path					path	string	false	"File or folder"
//	@Success		200
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/git/index/file/{project}/{path} [put]
func (h *Handler) putIndex(c *fiber.Ctx) error {
	project, path, err := h.target(c)
	if err != nil {
		return err
	}

	if path == "" {
		err = h.gitSvc.StageAll(c.Context(), project.Target())
	} else {
		err = h.gitSvc.Stage(c.Context(), project.Target(), path)
	}
	if err != nil {
		return fmt.Errorf("failed to stage: %w", err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// deleteIndex unstages a project path
//
//	@Summary		Unstage changes
//	@Description	Reset the index entries of a file or folder to HEAD
//	@Tags			git
//	@Param			Git-Protocol-Version	header	string	true	"Protocol version"
//	@Param			project					path	string	true	"Project ID or name"
//	@Param			path					path	string	false	"File or folder"
//	@Success		200
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/git/index/file/{project}/{path} [delete]
func (h *Handler) deleteIndex(c *fiber.Ctx) error {
	project, path, err := h.target(c)
	if err != nil {
		return err
	}

	if err = h.gitSvc.Unstage(c.Context(), project.Target(), path); err != nil {
		return fmt.Errorf("failed to unstage: %w", err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// getLog returns the commit log of a ref
//
//	@Summary		Get commit log
//	@Description	List the commits reachable from a ref, newest first, optionally limited to a path
//	@Tags			git
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string	true	"Protocol version"
//	@Param			ref						path		string	true	"Ref, HEAD by default"
//	@Param			project					path		string	true	"Project ID or name"
//	@Param			path					path		string	false	"File or folder"
//	@Param			limit					query		int		false	"Maximum number of commits"
//	@Success		200						{object}	LogResponse
//	@Failure		400						{object}	fiberfx.ErrorResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/commit/{ref}/file/{project}/{path} [get]
func (h *Handler) getLog(c *fiber.Ctx) error {
	project, path, err := h.target(c)
	if err != nil {
		return err
	}

	ref, err := param(c, "ref")
	if err != nil {
		return err
	}
	if ref == "" {
		ref = headRef
	}

	target := project.Target()
	commits, err := h.gitSvc.Log(c.Context(), target, ref, path, c.QueryInt("limit", 0))
	if err != nil {
		return fmt.Errorf("failed to get log: %w", err)
	}

	id := project.ID.String()
	response := LogResponse{
		Children: make([]CommitResponse, len(commits)),
		Location: h.links.Commit(id, ref, path),
	}
	for i := range commits {
		response.Children[i] = h.toCommitResponse(id, &commits[i])
	}

	if ref == headRef {
		tracked, trackedErr := h.gitSvc.TrackedRemote(c.Context(), target)
		if trackedErr != nil {
			return fmt.Errorf("failed to get tracked branch: %w", trackedErr)
		}
		if tracked != nil {
			response.RemoteLocation = h.links.RemoteBranch(id, tracked.Remote, tracked.Name)
		}
	}

	return c.JSON(response)
}

// postCommit commits the index, or merges a ref into HEAD
//
//	@Summary		Commit or merge
//	@Description	Commit the staged changes on HEAD, or merge the ref named by Merge into HEAD
//	@Tags			git
//	@Accept			json
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string			true	"Protocol version"
//	@Param			ref						path		string			true	"HEAD"
//	@Param			project					path		string			true	"Project ID or name"
//	@Param			commit					body		CommitRequest	true	"Commit or merge request"
//	@Success		200						{object}	CommitResponse	"The commit, or a MergeResponse when merging"
//	@Failure		400						{object}	fiberfx.ErrorResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/commit/{ref}/file/{project}/ [post]
func (h *Handler) postCommit(c *fiber.Ctx, req *CommitRequest) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	ref, err := param(c, "ref")
	if err != nil {
		return err
	}
	if ref != headRef {
		return fiber.NewError(fiber.StatusBadRequest, "commits can only be made on HEAD")
	}

	id := project.ID.String()

	if req.Merge != "" {
		result, mergeErr := h.gitSvc.Merge(c.Context(), project.Target(), req.Merge)
		if mergeErr != nil {
			return fmt.Errorf("failed to merge: %w", mergeErr)
		}

		return c.JSON(MergeResponse{
			Result:    string(result.Status),
			ID:        result.Head,
			Conflicts: result.Conflicts,
			Message:   result.Message,
		})
	}

	commit, err := h.gitSvc.Commit(c.Context(), project.Target(), git.CommitRequest{
		Message:     req.Message,
		Amend:       req.Amend,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return c.JSON(h.toCommitResponse(id, commit))
}

// listBranches returns the local branches
//
//	@Summary		List branches
//	@Description	List the local branches of a project
//	@Tags			git
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string	true	"Protocol version"
//	@Param			project					path		string	true	"Project ID or name"
//	@Success		200						{object}	BranchListResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/branch/file/{project}/ [get]
func (h *Handler) listBranches(c *fiber.Ctx) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	branches, err := h.gitSvc.ListBranches(c.Context(), project.Target())
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}

	id := project.ID.String()
	response := BranchListResponse{Children: make([]BranchResponse, len(branches))}
	for i := range branches {
		response.Children[i] = h.toBranchResponse(id, &branches[i])
	}

	return c.JSON(response)
}

// postBranch creates a branch
//
//	@Summary		Create a branch
//	@Description	Create a local branch at a start point, or tracking a remote branch
//	@Tags			git
//	@Accept			json
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string			true	"Protocol version"
//	@Param			project					path		string			true	"Project ID or name"
//	@Param			branch					body		BranchRequest	true	"Branch creation request"
//	@Success		201						{object}	BranchResponse
//	@Failure		400						{object}	fiberfx.ErrorResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/branch/file/{project}/ [post]
func (h *Handler) postBranch(c *fiber.Ctx, req *BranchRequest) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	branch, err := h.gitSvc.CreateBranch(c.Context(), project.Target(), git.BranchCreateRequest{
		Name:        req.Name,
		StartPoint:  req.StartPoint,
		TrackRemote: req.Remote,
	})
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}

	response := h.toBranchResponse(project.ID.String(), branch)
	c.Location(response.Location)
	return c.Status(fiber.StatusCreated).JSON(response)
}

// putBranch checks a branch out
//
//	@Summary		Check out a branch
//	@Description	Check out a local branch; refused when tracked files have uncommitted changes
//	@Tags			git
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string	true	"Protocol version"
//	@Param			branch					path		string	true	"Branch name"
//	@Param			project					path		string	true	"Project ID or name"
//	@Success		200						{object}	BranchResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Failure		409						{object}	ConflictResponse
//	@Router			/git/branch/{branch}/file/{project}/ [put]
func (h *Handler) putBranch(c *fiber.Ctx) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	name, err := param(c, "branch")
	if err != nil {
		return err
	}

	branch, err := h.gitSvc.Checkout(c.Context(), project.Target(), name)
	if err != nil {
		return fmt.Errorf("failed to check out branch: %w", err)
	}

	return c.JSON(h.toBranchResponse(project.ID.String(), branch))
}

// deleteBranch deletes a branch
//
//	@Summary		Delete a branch
//	@Description	Delete a local branch other than the current one
//	@Tags			git
//	@Param			Git-Protocol-Version	header	string	true	"Protocol version"
//	@Param			branch					path	string	true	"Branch name"
//	@Param			project					path	string	true	"Project ID or name"
//	@Success		204
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/git/branch/{branch}/file/{project}/ [delete]
func (h *Handler) deleteBranch(c *fiber.Ctx) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	name, err := param(c, "branch")
	if err != nil {
		return err
	}

	if err = h.gitSvc.DeleteBranch(c.Context(), project.Target(), name); err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// listTags returns the tags
//
//	@Summary		List tags
//	@Description	List the tags of a project
//	@Tags			git
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string	true	"Protocol version"
//	@Param			project					path		string	true	"Project ID or name"
//	@Success		200						{object}	TagListResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/tag/file/{project}/ [get]
func (h *Handler) listTags(c *fiber.Ctx) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	tags, err := h.gitSvc.ListTags(c.Context(), project.Target())
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}

	id := project.ID.String()
	response := TagListResponse{Children: make([]TagResponse, len(tags))}
	for i := range tags {
		response.Children[i] = h.toTagResponse(id, &tags[i])
	}

	return c.JSON(response)
}

// postTag creates a tag
//
//	@Summary		Create a tag
//	@Description	Create a lightweight tag, or an annotated one when a message is given
//	@Tags			git
//	@Accept			json
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string		true	"Protocol version"
//	@Param			project					path		string		true	"Project ID or name"
//	@Param			tag						body		TagRequest	true	"Tag creation request"
//	@Success		201						{object}	TagResponse
//	@Failure		400						{object}	fiberfx.ErrorResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/tag/file/{project}/ [post]
func (h *Handler) postTag(c *fiber.Ctx, req *TagRequest) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	tag, err := h.gitSvc.CreateTag(c.Context(), project.Target(), git.TagCreateRequest{
		Name:      req.Name,
		TargetRef: req.TargetRef,
		Message:   req.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.toTagResponse(project.ID.String(), tag))
}

// listRemotes returns the remotes
//
//	@Summary		List remotes
//	@Description	List the configured remotes of a project
//	@Tags			git
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string	true	"Protocol version"
//	@Param			project					path		string	true	"Project ID or name"
//	@Success		200						{object}	RemoteListResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/remote/file/{project}/ [get]
func (h *Handler) listRemotes(c *fiber.Ctx) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	remotes, err := h.gitSvc.ListRemotes(c.Context(), project.Target())
	if err != nil {
		return fmt.Errorf("failed to list remotes: %w", err)
	}

	id := project.ID.String()
	response := RemoteListResponse{Children: make([]RemoteResponse, len(remotes))}
	for i, remote := range remotes {
		response.Children[i] = RemoteResponse{
			Name:     remote.Name,
			URLs:     remote.URLs,
			Location: h.links.Remote(id, remote.Name),
		}
	}

	return c.JSON(response)
}

// postRemote adds a remote
//
//	@Summary		Add a remote
//	@Description	Configure a new remote
//	@Tags			git
//	@Accept			json
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string			true	"Protocol version"
//	@Param			project					path		string			true	"Project ID or name"
//	@Param			remote					body		RemoteRequest	true	"Remote"
//	@Success		201						{object}	RemoteResponse
//	@Failure		400						{object}	fiberfx.ErrorResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/remote/file/{project}/ [post]
func (h *Handler) postRemote(c *fiber.Ctx, req *RemoteRequest) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	remote, err := h.gitSvc.AddRemote(c.Context(), project.Target(), req.Name, req.URI)
	if err != nil {
		return fmt.Errorf("failed to add remote: %w", err)
	}

	response := RemoteResponse{
		Name:     remote.Name,
		URLs:     remote.URLs,
		Location: h.links.Remote(project.ID.String(), remote.Name),
	}
	c.Location(response.Location)
	return c.Status(fiber.StatusCreated).JSON(response)
}

// listRemoteBranches returns the branches of a remote
//
//	@Summary		List remote branches
//	@Description	List the remote-tracking branches of a remote as last fetched
//	@Tags			git
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string	true	"Protocol version"
//	@Param			remote					path		string	true	"Remote name"
//	@Param			project					path		string	true	"Project ID or name"
//	@Success		200						{object}	RemoteBranchListResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/remote/{remote}/file/{project}/ [get]
func (h *Handler) listRemoteBranches(c *fiber.Ctx) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	remote, err := param(c, "remote")
	if err != nil {
		return err
	}

	refs, err := h.gitSvc.ListRemoteBranches(c.Context(), project.Target(), remote)
	if err != nil {
		return fmt.Errorf("failed to list remote branches: %w", err)
	}

	id := project.ID.String()
	response := RemoteBranchListResponse{Children: make([]RemoteBranchResponse, len(refs))}
	for i := range refs {
		response.Children[i] = h.toRemoteBranchResponse(id, &refs[i])
	}

	return c.JSON(response)
}

// getRemoteBranch returns a remote branch
//
//	@Summary		Get a remote branch
//	@Description	Get a remote-tracking branch as last fetched
//	@Tags			git
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string	true	"Protocol version"
//	@Param			remote					path		string	true	"Remote name"
//	@Param			branch					path		string	true	"Branch name"
//	@Param			project					path		string	true	"Project ID or name"
//	@Success		200						{object}	RemoteBranchResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/remote/{remote}/{branch}/file/{project}/ [get]
func (h *Handler) getRemoteBranch(c *fiber.Ctx) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	remote, branch, err := remoteBranch(c)
	if err != nil {
		return err
	}

	ref, err := h.gitSvc.GetRemoteBranch(c.Context(), project.Target(), remote, branch)
	if err != nil {
		return fmt.Errorf("failed to get remote branch: %w", err)
	}

	return c.JSON(h.toRemoteBranchResponse(project.ID.String(), ref))
}

// postRemoteBranch pushes to or fetches a remote branch
//
//	@Summary		Push or fetch
//	@Description	Queue a push of a local ref to the remote branch, or a fetch of the remote when Fetch is set.
//	@Description	The outcome is reported by the task named in the Location header.
//	@Tags			git
//	@Accept			json
//	@Produce		json
//	@Param			Git-Protocol-Version	header		string				true	"Protocol version"
//	@Param			remote					path		string				true	"Remote name"
//	@Param			branch					path		string				true	"Branch name"
//	@Param			project					path		string				true	"Project ID or name"
//	@Param			request					body		RemoteBranchRequest	true	"Push or fetch request"
//	@Success		202						{object}	TaskResponse
//	@Failure		400						{object}	fiberfx.ErrorResponse
//	@Failure		404						{object}	fiberfx.ErrorResponse
//	@Router			/git/remote/{remote}/{branch}/file/{project}/ [post]
func (h *Handler) postRemoteBranch(c *fiber.Ctx, req *RemoteBranchRequest) error {
	project, _, err := h.target(c)
	if err != nil {
		return err
	}

	remote, branch, err := remoteBranch(c)
	if err != nil {
		return err
	}

	target := project.Target()
	if _, err = h.gitSvc.GetRemote(c.Context(), target, remote); err != nil {
		return fmt.Errorf("failed to get remote: %w", err)
	}

	draft := tasks.TaskDraft{ProjectID: project.ID, Kind: tasks.KindPush}
	var fn tasks.Func

	if req.Fetch {
		draft.Kind = tasks.KindFetch
		fetch := git.FetchRequest{
			Remote:      remote,
			Branch:      branch,
			Credentials: req.credentials(),
		}
		fn = func(ctx context.Context) (any, error) {
			ref, fetchErr := h.gitSvc.Fetch(ctx, target, fetch)
			if fetchErr != nil {
				return nil, fetchErr //nolint:wrapcheck //stored as task error
			}
			return h.toRemoteBranchResponse(project.ID.String(), ref), nil
		}
	} else {
		push := git.PushRequest{
			Remote:      remote,
			Branch:      branch,
			SrcRef:      req.PushSrcRef,
			Delete:      req.Delete,
			IncludeTags: req.PushTags,
			Credentials: req.credentials(),
		}
		fn = func(ctx context.Context) (any, error) {
			result, pushErr := h.gitSvc.Push(ctx, target, push)
			if pushErr != nil {
				return nil, pushErr //nolint:wrapcheck //stored as task error
			}
			return result, nil
		}
	}

	task, err := h.tasksSvc.Start(c.Context(), draft, fn)
	if err != nil {
		return fmt.Errorf("failed to start task: %w", err)
	}

	location := h.links.Task(task.ID.String())
	c.Location(location)
	return c.Status(fiber.StatusAccepted).JSON(TaskResponse{
		ID:       task.ID.String(),
		Kind:     string(task.Kind),
		Status:   string(task.Status),
		Location: location,
	})
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	var conflict *git.ConflictError
	switch {
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(ConflictResponse{
			Severity:  string(git.SeverityWarning),
			Message:   conflict.Error(),
			Conflicts: conflict.Paths,
		})
	case errors.Is(err, git.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, git.ErrNotFound), errors.Is(err, projects.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, git.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, git.ErrTransport):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
