package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

// TokenVerifier decodes an access token into an account id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UseCase struct {
	accounts repository.AccountRepository
	tokens   TokenVerifier
	logger   *zap.Logger
}

func New(accounts repository.AccountRepository, tokens TokenVerifier, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger,
	}
}

// Authenticate resolves a bearer token to its account.
func (uc *UseCase) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	accountID, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalidToken, domain.ErrInvalidToken.Message, err)
	}
	return uc.GetProfile(ctx, accountID)
}

// GetProfile loads the account without its password hash.
func (uc *UseCase) GetProfile(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnknownAccount
		}
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}
