package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	appLogger "github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository"
)

// Failures surfaced to clients.
var (
	ErrInvalidID          = domain.NewError(domain.ErrCodeInvalid, "Task ID not valid")
	ErrNoTask             = domain.NewError(domain.ErrCodeNotFound, "No task found..")
	ErrTaskMissing        = domain.NewError(domain.ErrCodeNotFound, "Task with given ID not found")
	ErrReadForbidden      = domain.NewError(domain.ErrCodeForbidden, "You can't access task of another user")
	ErrUpdateForbidden    = domain.NewError(domain.ErrCodeForbidden, "You can't update task of another user")
	ErrDeleteForbidden    = domain.NewError(domain.ErrCodeForbidden, "You can't delete task of another user")
	ErrMissingDescription = domain.NewError(domain.ErrCodeInvalid, "Description of task not found")
	ErrMissingSchedule    = domain.NewError(domain.ErrCodeInvalid, "Due date, time, or priority not provided")
	ErrInvalidSchedule    = domain.NewError(domain.ErrCodeInvalid, "Invalid date or time format")
	ErrInvalidPriority    = domain.NewError(domain.ErrCodeInvalid, "Priority must be High, Medium or Low")
)

// Input is the client-supplied part of a task.
type Input struct {
	Description string
	DueDate     string
	DueTime     string
	Priority    string
}

type UseCase struct {
	tasks    repository.TaskRepository
	location *time.Location
	logger   *zap.Logger
}

// New builds the task use case. Due dates without a zone are read in loc.
func New(tasks repository.TaskRepository, loc *time.Location, logger *zap.Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		location: loc,
		logger:   logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{OwnerID: ownerID})
}

func (uc *UseCase) GetTask(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	if !domain.IsValidID(id) {
		return nil, ErrInvalidID
	}
	task, err := uc.load(ctx, id, ErrNoTask)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(ownerID) {
		return nil, ErrReadForbidden
	}
	return task, nil
}

func (uc *UseCase) CreateTask(ctx context.Context, ownerID string, in Input) (*domain.Task, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, ErrMissingDescription
	}
	if strings.TrimSpace(in.DueDate) == "" || strings.TrimSpace(in.DueTime) == "" || strings.TrimSpace(in.Priority) == "" {
		return nil, ErrMissingSchedule
	}
	due, err := domain.CombineDue(in.DueDate, in.DueTime, uc.location)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	priority, ok := domain.ParsePriority(in.Priority)
	if !ok {
		return nil, ErrInvalidPriority
	}

	task := &domain.Task{
		OwnerID:     ownerID,
		Description: strings.TrimSpace(in.Description),
		DueDate:     due,
		Priority:    priority,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Debug("task created", zap.String("task_id", task.ID), zap.String("owner_id", ownerID))
	return task, nil
}

// UpdateTask replaces description, due date and priority. An empty priority keeps the stored one.
func (uc *UseCase) UpdateTask(ctx context.Context, ownerID, id string, in Input) (*domain.Task, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, ErrMissingDescription
	}
	if !domain.IsValidID(id) {
		return nil, ErrInvalidID
	}
	due, err := domain.CombineDue(in.DueDate, in.DueTime, uc.location)
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	var priority domain.Priority
	if strings.TrimSpace(in.Priority) != "" {
		p, ok := domain.ParsePriority(in.Priority)
		if !ok {
			return nil, ErrInvalidPriority
		}
		priority = p
	}

	task, err := uc.load(ctx, id, ErrTaskMissing)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(ownerID) {
		return nil, ErrUpdateForbidden
	}

	task.Description = strings.TrimSpace(in.Description)
	task.DueDate = due
	if priority != "" {
		task.Priority = priority
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, ErrTaskMissing
		}
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, ownerID, id string) error {
	if !domain.IsValidID(id) {
		return ErrInvalidID
	}
	task, err := uc.load(ctx, id, ErrTaskMissing)
	if err != nil {
		return err
	}
	if !task.OwnedBy(ownerID) {
		return ErrDeleteForbidden
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return ErrTaskMissing
		}
		return err
	}
	appLogger.WithRequestID(ctx, uc.logger).Debug("task deleted", zap.String("task_id", id), zap.String("owner_id", ownerID))
	return nil
}

func (uc *UseCase) load(ctx context.Context, id string, notFound *domain.Error) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return task, nil
}
