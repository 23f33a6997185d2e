package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
	middleware "task-manager.com/task-manager/internal/http/middlewares"
	"task-manager.com/task-manager/internal/http/validators"
	"task-manager.com/task-manager/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
	fetchLimit  int
	logger      *slog.Logger
}

func NewTaskHandler(taskService *services.TaskService, fetchLimit int, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		fetchLimit:  fetchLimit,
		logger:      logger,
	}
}

func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.logger.Info("creating task", "title", req.Title, "current_user", currentUsername(c))

	task, err := h.taskService.CreateTask(c.Request().Context(), req.ToNewTask())
	if err != nil {
		return h.fail(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) ListTasks(c echo.Context) error {
	skip, limit := 0, h.fetchLimit
	err := echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "skip and limit must be integers")
	}
	if err := validators.ValidatePagination(skip, limit); err != nil {
		return err
	}

	h.logger.Info("fetching tasks", "skip", skip, "limit", limit, "current_user", currentUsername(c))

	tasks, err := h.taskService.ListTasks(c.Request().Context(), skip, limit)
	if err != nil {
		return h.fail(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.logger.Info("updating task", "task_id", id, "current_user", currentUsername(c))

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return h.fail(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	h.logger.Info("deleting task", "task_id", id, "current_user", currentUsername(c))

	task, err := h.taskService.DeleteTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) fail(err error) error {
	exc := apperrors.Translate(err)
	if exc.StatusCode >= http.StatusInternalServerError {
		h.logger.Error("task request failed", "error", err)
	}
	return exc
}

func currentUsername(c echo.Context) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.Username
	}
	return ""
}
