package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/skobayashi/taskdeck/internal/models"
	"gorm.io/gorm"
)

// sortColumns whitelists the task fields exposed through sortBy. Unknown
// fields fall back to the default ordering rather than reaching the SQL.
var sortColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"status":      "status",
	"priority":    "priority",
	"dueDate":     "due_date",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task owned by the given user. A foreign-owned task and
// a missing one are indistinguishable here.
func (r *GormTaskRepository) FindByID(userID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter. The user scope is applied
// first and cannot be overridden by any other filter value; the remaining
// filters are combined with AND, except the two-field search OR.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("user_id = ?", filter.UserID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			r.db.Where("LOWER(title) LIKE ?", pattern).
				Or("LOWER(description) LIKE ?", pattern),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if column, ok := sortColumns[filter.SortBy]; ok {
		if filter.SortDesc {
			order = column + " DESC"
		} else {
			order = column + " ASC"
		}
	}

	var tasks []models.Task
	if err := query.Order(order).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateStatus atomically sets the status of a task owned by the user.
func (r *GormTaskRepository) UpdateStatus(userID, id uuid.UUID, status models.TaskStatus) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a task owned by the user. Deleting an already-deleted
// task reports not found.
func (r *GormTaskRepository) Delete(userID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
