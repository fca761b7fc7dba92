package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// AccountRepository persists accounts. Create must enforce email uniqueness
// atomically and report a violation as domain.ErrEmailTaken.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
}
