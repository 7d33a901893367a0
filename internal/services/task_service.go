package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skobayashi/taskdeck/internal/models"
	"github.com/skobayashi/taskdeck/internal/repository"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasksInput represents the raw query parameters for listing tasks.
type ListTasksInput struct {
	Status    string
	Priority  string
	Search    string
	SortBy    string
	SortOrder string
}

// ListTasks returns the user's tasks matching the filters. Unknown status
// or priority values are silently ignored rather than rejected.
func (s *TaskService) ListTasks(userID uuid.UUID, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		UserID:   userID,
		Search:   input.Search,
		SortBy:   input.SortBy,
		SortDesc: input.SortOrder != "asc",
	}

	if status := models.TaskStatus(input.Status); status.Valid() {
		filter.Status = &status
	}
	if priority := models.TaskPriority(input.Priority); priority.Valid() {
		filter.Priority = &priority
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task owned by the user.
func (s *TaskService) GetTask(userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// TaskInput carries the writable task fields. The owner is never part of
// it; ownership comes from the authenticated caller alone.
type TaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// CreateTask creates a task for the user, applying enum defaults.
func (s *TaskService) CreateTask(userID uuid.UUID, input TaskInput) (*models.Task, error) {
	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask replaces all writable fields of a task owned by the user.
func (s *TaskService) UpdateTask(userID, taskID uuid.UUID, input TaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	// Full replace: omitted enums fall back to their defaults, same as
	// on create.
	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority
	task.DueDate = input.DueDate

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// UpdateStatus changes only the status of a task owned by the user.
func (s *TaskService) UpdateStatus(userID, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	if err := s.taskRepo.UpdateStatus(userID, taskID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task owned by the user. Repeating the delete
// reports not found.
func (s *TaskService) DeleteTask(userID, taskID uuid.UUID) error {
	if err := s.taskRepo.Delete(userID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
