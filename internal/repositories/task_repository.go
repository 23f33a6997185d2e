package repository

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-manager.com/task-manager/internal/constants"
	"task-manager.com/task-manager/internal/database"
	model "task-manager.com/task-manager/internal/models"
)

// TaskRepository never keeps the session it is handed.
type TaskRepository struct {
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*TaskRepository)

func WithClock(now func() time.Time) Option {
	return func(r *TaskRepository) {
		r.now = now
	}
}

func NewTaskRepository(logger *slog.Logger, opts ...Option) *TaskRepository {
	r := &TaskRepository{
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *TaskRepository) List(sess *database.Session, skip, limit int) ([]model.Task, error) {
	if skip < 0 || limit < 0 {
		return nil, ErrInvalidPagination
	}

	r.logger.Info("fetching tasks", "skip", skip, "limit", limit)

	tasks := []model.Task{}
	if limit == 0 {
		return tasks, nil
	}

	err := sess.DB().
		Order("created_at asc").Order("id asc").
		Offset(skip).Limit(limit).
		Find(&tasks).Error
	if err != nil {
		r.logger.Error("failed to list tasks", "error", err)
		return nil, storageFailure("list tasks", err)
	}

	return tasks, nil
}

func (r *TaskRepository) Get(sess *database.Session, id string) (*model.Task, error) {
	r.logger.Info("fetching task", "task_id", id)

	var task model.Task
	err := sess.DB().First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &TaskNotFoundError{ID: id}
		}
		r.logger.Error("failed to fetch task", "task_id", id, "error", err)
		return nil, storageFailure("get task", err)
	}

	return &task, nil
}

func (r *TaskRepository) Create(sess *database.Session, data model.NewTask) (*model.Task, error) {
	if data.Status == "" {
		data.Status = constants.StatusOpen
	}
	if !data.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	r.logger.Info("creating task", "title", data.Title)

	now := r.now()
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       data.Title,
		Description: data.Description,
		Status:      data.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := sess.DB().Create(task).Error; err != nil {
		return nil, rollback(sess, r.logger, "create task", err)
	}
	if err := sess.Commit(); err != nil {
		return nil, rollback(sess, r.logger, "create task", err)
	}

	r.logger.Info("created task", "task_id", task.ID)
	return task, nil
}

// Update returns ErrTaskNotFound without touching the store when id is unknown.
func (r *TaskRepository) Update(sess *database.Session, id string, patch model.TaskPatch) (*model.Task, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	r.logger.Info("updating task", "task_id", id)

	task, err := r.Get(sess, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			r.logger.Warn("task not found", "task_id", id)
		}
		return nil, err
	}

	patch.Apply(task)
	task.UpdatedAt = r.now()
	if task.UpdatedAt.Before(task.CreatedAt) {
		task.UpdatedAt = task.CreatedAt
	}

	if err := sess.DB().Save(task).Error; err != nil {
		return nil, rollback(sess, r.logger, "update task", err)
	}
	if err := sess.Commit(); err != nil {
		return nil, rollback(sess, r.logger, "update task", err)
	}

	r.logger.Info("updated task", "task_id", id)
	return task, nil
}

// Delete returns the removed task as it was last stored.
func (r *TaskRepository) Delete(sess *database.Session, id string) (*model.Task, error) {
	r.logger.Info("deleting task", "task_id", id)

	task, err := r.Get(sess, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			r.logger.Warn("task not found", "task_id", id)
		}
		return nil, err
	}

	if err := sess.DB().Delete(&model.Task{}, "id = ?", task.ID).Error; err != nil {
		return nil, rollback(sess, r.logger, "delete task", err)
	}
	if err := sess.Commit(); err != nil {
		return nil, rollback(sess, r.logger, "delete task", err)
	}

	r.logger.Info("deleted task", "task_id", id)
	return task, nil
}
