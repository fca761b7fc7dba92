package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

type TaskFilter struct {
	OwnerID string
}

// TaskRepository persists tasks. Missing records are reported as domain.ErrTaskNotFound.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
