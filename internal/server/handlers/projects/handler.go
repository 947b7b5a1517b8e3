package projects

import (
	"errors"
	"fmt"

	"github.com/apiarycd/gitgate/internal/git"
	"github.com/apiarycd/gitgate/internal/links"
	"github.com/apiarycd/gitgate/internal/projects"
	"github.com/apiarycd/gitgate/internal/server/validation"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	projectsSvc *projects.Service
	links       *links.Builder

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	projectsSvc *projects.Service,
	links *links.Builder,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		projectsSvc: projectsSvc,
		links:       links,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/projects")

	r.Use(h.errorsHandler)
	r.Post("/", validation.DecorateWithBodyEx(h.validator, h.post))
	r.Get("/", h.list)
	r.Get("/:project", h.get)
	r.Delete("/:project", h.delete)
}

// post creates a new project
//
//	@Summary		Create a new project
//	@Description	Create a new project, cloning its repository when a clone URL is given
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			project	body		CreateRequest	true	"Project creation request"
//	@Success		201		{object}	ProjectResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		409		{object}	fiberfx.ErrorResponse
//	@Failure		502		{object}	fiberfx.ErrorResponse
//	@Router			/projects [post]
func (h *Handler) post(c *fiber.Ctx, req *CreateRequest) error {
	draft := projects.ProjectDraft{
		Name:        req.Name,
		CloneURL:    req.CloneURL,
		Branch:      req.Branch,
		Credentials: req.credentials(),
	}

	project, err := h.projectsSvc.Create(c.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	response := h.toResponse(project)
	c.Location(response.Location)
	return c.Status(fiber.StatusCreated).JSON(response)
}

// list returns all projects
//
//	@Summary		List all projects
//	@Description	Retrieve a list of all projects
//	@Tags			projects
//	@Produce		json
//	@Success		200	{array}	ProjectResponse
//	@Router			/projects [get]
func (h *Handler) list(c *fiber.Ctx) error {
	items, err := h.projectsSvc.List(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, len(items))
	for i := range items {
		responses[i] = h.toResponse(&items[i])
	}

	return c.JSON(responses)
}

// get returns a project
//
//	@Summary		Get a project
//	@Description	Retrieve a project by ID or name, with its git resource links
//	@Tags			projects
//	@Produce		json
//	@Param			project	path		string	true	"Project ID or name"
//	@Success		200		{object}	ProjectResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/projects/{project} [get]
func (h *Handler) get(c *fiber.Ctx) error {
	project, err := h.projectsSvc.Resolve(c.Context(), c.Params("project"))
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	return c.JSON(h.toResponse(project))
}

// delete removes a project
//
//	@Summary		Delete a project
//	@Description	Delete a project together with its repository
//	@Tags			projects
//	@Param			project	path	string	true	"Project ID or name"
//	@Success		204
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/projects/{project} [delete]
func (h *Handler) delete(c *fiber.Ctx) error {
	project, err := h.projectsSvc.Resolve(c.Context(), c.Params("project"))
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	err = h.projectsSvc.Delete(c.Context(), project.ID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, projects.ErrNotFound), errors.Is(err, git.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, projects.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, git.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, git.ErrTransport):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func (h *Handler) toResponse(project *projects.Project) ProjectResponse {
	id := project.ID.String()

	return ProjectResponse{
		ID:       project.ID,
		Name:     project.Name,
		CloneURL: project.CloneURL,
		Location: h.links.ProjectURI(id),
		Git:      h.links.Project(id),

		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}
