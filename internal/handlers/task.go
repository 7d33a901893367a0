package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/skobayashi/taskdeck/internal/errors"
	"github.com/skobayashi/taskdeck/internal/middleware"
	"github.com/skobayashi/taskdeck/internal/models"
	"github.com/skobayashi/taskdeck/internal/response"
	"github.com/skobayashi/taskdeck/internal/services"
	"github.com/skobayashi/taskdeck/internal/validation"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService       *services.TaskService
	suggestionService *services.SuggestionService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, suggestionService *services.SuggestionService) *TaskHandler {
	return &TaskHandler{
		taskService:       taskService,
		suggestionService: suggestionService,
	}
}

// taskRequest carries the writable task fields; create and full update
// share it. Any client-supplied owner id simply has no field to land in.
type taskRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"dueDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00,futuredate"`
}

func (r taskRequest) toInput() services.TaskInput {
	input := services.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      models.TaskStatus(r.Status),
		Priority:    models.TaskPriority(r.Priority),
	}
	if r.DueDate != "" {
		if t, err := time.Parse(time.RFC3339, r.DueDate); err == nil {
			input.DueDate = &t
		}
	}
	return input
}

// ListTasks returns the caller's tasks, filtered, searched and sorted.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, total, err := h.taskService.ListTasks(user.ID, services.ListTasksInput{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	})
	if err != nil {
		apierrors.ServerError(c, "Error retrieving tasks")
		return
	}

	meta := response.Meta{Count: len(tasks), Total: total}
	response.SuccessWithMeta(c, http.StatusOK, tasks, meta, "Tasks retrieved successfully")
}

// GetTask returns a single task owned by the caller.
func (h *TaskHandler) GetTask(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(user.ID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, task, "Task retrieved successfully")
}

// CreateTask creates a new task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if details := validation.Check(req); details != nil {
		apierrors.ValidationFailed(c, "Validation failed", details)
		return
	}

	task, err := h.taskService.CreateTask(user.ID, req.toInput())
	if err != nil {
		apierrors.ServerError(c, "Error creating task")
		return
	}

	response.Success(c, http.StatusCreated, task, "Task created successfully")
}

// UpdateTask replaces all writable fields of a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if details := validation.Check(req); details != nil {
		apierrors.ValidationFailed(c, "Validation failed", details)
		return
	}

	task, err := h.taskService.UpdateTask(user.ID, taskID, req.toInput())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, task, "Task updated successfully")
}

// UpdateTaskStatus changes only the status of a task.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type StatusRequest struct {
		Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if details := validation.Check(req); details != nil {
		apierrors.ValidationFailed(c, "Validation failed", details)
		return
	}

	task, err := h.taskService.UpdateStatus(user.ID, taskID, models.TaskStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, task, "Task status updated successfully")
}

// DeleteTask removes a task owned by the caller.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(user.ID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{}, "Task deleted successfully")
}

// SuggestTasks extracts candidate tasks from free-form text.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	if _, exists := middleware.CurrentUser(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SuggestRequest struct {
		Text string `json:"text" validate:"required"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if details := validation.Check(req); details != nil {
		apierrors.ValidationFailed(c, "Validation failed", details)
		return
	}

	suggestions, err := h.suggestionService.SuggestTasks(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrSuggestionsNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success":   false,
				"error":     apierrors.NewAPIError(apierrors.ErrCodeServerError, "Task suggestions are not configured"),
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
		apierrors.ServerError(c, "Error suggesting tasks")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tasks": suggestions}, "Tasks suggested successfully")
}

// parseTaskID reads the :id path parameter. A malformed id is reported as
// not found, indistinguishable from a missing row.
func parseTaskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.NotFound(c, "Task not found")
		return uuid.Nil, false
	}
	return id, true
}

// respondTaskError normalizes task service failures into the envelope.
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		apierrors.ServerError(c, "")
	}
}
