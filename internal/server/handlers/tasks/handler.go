package tasks

import (
	"errors"
	"fmt"

	"github.com/apiarycd/gitgate/internal/links"
	"github.com/apiarycd/gitgate/internal/projects"
	"github.com/apiarycd/gitgate/internal/tasks"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	tasksSvc    *tasks.Service
	projectsSvc *projects.Service
	links       *links.Builder

	logger *zap.Logger
}

func NewHandler(
	tasksSvc *tasks.Service,
	projectsSvc *projects.Service,
	links *links.Builder,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		tasksSvc:    tasksSvc,
		projectsSvc: projectsSvc,
		links:       links,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/tasks")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Get("/:id", h.get)
}

// list returns the tasks of a project
//
//	@Summary		List tasks
//	@Description	List the push and fetch tasks of a project, newest first
//	@Tags			tasks
//	@Produce		json
//	@Param			project	query		string	true	"Project ID or name"
//	@Success		200		{array}		TaskResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/tasks [get]
func (h *Handler) list(c *fiber.Ctx) error {
	value := c.Query("project")
	if value == "" {
		return fiber.NewError(fiber.StatusBadRequest, "project is required")
	}

	project, err := h.projectsSvc.Resolve(c.Context(), value)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	items, err := h.tasksSvc.ListByProject(c.Context(), project.ID)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, len(items))
	for i := range items {
		responses[i] = h.toResponse(&items[i])
	}

	return c.JSON(responses)
}

// get returns a task
//
//	@Summary		Get a task
//	@Description	Retrieve a push or fetch task with its result
//	@Tags			tasks
//	@Produce		json
//	@Param			id	path		string	true	"Task ID"
//	@Success		200	{object}	TaskResponse
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/tasks/{id} [get]
func (h *Handler) get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	task, err := h.tasksSvc.Get(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	return c.JSON(h.toResponse(task))
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, tasks.ErrNotFound) || errors.Is(err, projects.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func (h *Handler) toResponse(task *tasks.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Kind:        string(task.Kind),
		Status:      string(task.Status),
		Result:      task.Result,
		Error:       task.Error,
		StartedAt:   task.StartedAt,
		CompletedAt: task.CompletedAt,
		Location:    h.links.Task(task.ID.String()),

		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}
