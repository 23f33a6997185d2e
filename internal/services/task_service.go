package services

import (
	"context"
	"log/slog"

	"task-manager.com/task-manager/internal/database"
	model "task-manager.com/task-manager/internal/models"
	repository "task-manager.com/task-manager/internal/repositories"
)

// TaskService runs every task operation in its own unit of work.
type TaskService struct {
	sessions *database.Manager
	repo     *repository.TaskRepository
	logger   *slog.Logger
}

func NewTaskService(sessions *database.Manager, repo *repository.TaskRepository, logger *slog.Logger) *TaskService {
	return &TaskService{
		sessions: sessions,
		repo:     repo,
		logger:   logger,
	}
}

func (s *TaskService) ListTasks(ctx context.Context, skip, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := s.sessions.Run(ctx, func(sess *database.Session) error {
		var err error
		tasks, err = s.repo.List(sess, skip, limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("found tasks", "count", len(tasks))
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.withTask(ctx, func(sess *database.Session) (*model.Task, error) {
		return s.repo.Get(sess, id)
	})
}

func (s *TaskService) CreateTask(ctx context.Context, data model.NewTask) (*model.Task, error) {
	return s.withTask(ctx, func(sess *database.Session) (*model.Task, error) {
		return s.repo.Create(sess, data)
	})
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	return s.withTask(ctx, func(sess *database.Session) (*model.Task, error) {
		return s.repo.Update(sess, id, patch)
	})
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) (*model.Task, error) {
	return s.withTask(ctx, func(sess *database.Session) (*model.Task, error) {
		return s.repo.Delete(sess, id)
	})
}

func (s *TaskService) withTask(ctx context.Context, fn func(*database.Session) (*model.Task, error)) (*model.Task, error) {
	var task *model.Task
	err := s.sessions.Run(ctx, func(sess *database.Session) error {
		var err error
		task, err = fn(sess)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}
