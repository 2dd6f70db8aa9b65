package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patroldesk/core/internal/application/services"
	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/domain/stats"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// MessageResponse is a simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}

var notFoundErrors = []error{
	entities.ErrTaskNotFound,
	entities.ErrAccidentNotFound,
	entities.ErrCampaignNotFound,
	entities.ErrTargetNotFound,
	entities.ErrVerificationNotFound,
	entities.ErrResultNotFound,
	entities.ErrDocumentNotFound,
	entities.ErrFolderNotFound,
}

// httpError maps domain errors onto HTTP status codes
func httpError(err error) error {
	for _, notFound := range notFoundErrors {
		if errors.Is(err, notFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
	}
	switch {
	case errors.Is(err, entities.ErrEmptyProgress):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrDuplicateDocumentName):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrMirrorNotConfigured):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// rangeFromQuery reads the optional start/end date filters. Empty bounds
// leave that side of the range open.
func rangeFromQuery(c echo.Context) stats.DateRange {
	return stats.DateRange{
		Start: c.QueryParam("start"),
		End:   c.QueryParam("end"),
	}
}

// TaskHandler handles calendar task requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns every task
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list tasks", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask returns one task by id
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask creates a task
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Failed to create task", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask applies partial edits to a task
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

// GetDayView returns the resolved calendar view for a date
func (h *TaskHandler) GetDayView(c echo.Context) error {
	view, err := h.taskService.GetDayView(c.Request().Context(), c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}
