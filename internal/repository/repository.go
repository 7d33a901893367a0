package repository

import (
	"github.com/google/uuid"
	"github.com/skobayashi/taskdeck/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by their normalized (lowercased) email
	FindByEmail(email string) (*models.User, error)
}

// TaskFilter holds the query-engine inputs for listing tasks. UserID is
// mandatory; every other field narrows the result.
type TaskFilter struct {
	UserID   uuid.UUID
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Search   string
	SortBy   string
	SortDesc bool
}

// TaskRepository defines the interface for task data access. Every method
// that touches an existing row is scoped by the owning user id.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task owned by the given user
	FindByID(userID, id uuid.UUID) (*models.Task, error)

	// List retrieves tasks matching the filter, with their total count
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// UpdateStatus atomically sets the status of a task owned by the user
	UpdateStatus(userID, id uuid.UUID, status models.TaskStatus) error

	// Delete removes a task owned by the user
	Delete(userID, id uuid.UUID) error
}
