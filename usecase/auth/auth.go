package auth

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	appLogger "github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository"
)

const minPasswordLength = 4

// Validation and lookup failures surfaced to clients.
var (
	ErrMissingFields    = domain.NewError(domain.ErrCodeInvalid, "Please fill all the fields")
	ErrNonStringFields  = domain.NewError(domain.ErrCodeInvalid, "Please send string values only")
	ErrShortPassword    = domain.NewError(domain.ErrCodeInvalid, "Password length must be at least 4 characters")
	ErrInvalidEmail     = domain.NewError(domain.ErrCodeInvalid, "Invalid Email")
	ErrMissingLogin     = domain.NewError(domain.ErrCodeInvalid, "Please enter all details!!")
	ErrEmailUnknown     = domain.NewError(domain.ErrCodeNotFound, "This email is not registered!!")
	ErrPasswordMismatch = domain.NewError(domain.ErrCodeUnauthorized, "Password incorrect!!")
)

// PasswordHasher hashes and compares account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// TokenIssuer signs access tokens for an account id.
type TokenIssuer interface {
	Issue(accountID string) (string, error)
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token   string
	Account *domain.Account
}

type UseCase struct {
	accounts  repository.AccountRepository
	passwords PasswordHasher
	tokens    TokenIssuer
	validate  *validator.Validate
	logger    *zap.Logger
}

func New(accounts repository.AccountRepository, passwords PasswordHasher, tokens TokenIssuer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		accounts:  accounts,
		passwords: passwords,
		tokens:    tokens,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Signup registers a new account. Emails are compared case-insensitively.
func (uc *UseCase) Signup(ctx context.Context, in SignupInput) (*domain.Account, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, ErrShortPassword
	}
	email := domain.NormalizeEmail(in.Email)
	if err := uc.validate.Var(email, "email"); err != nil {
		return nil, ErrInvalidEmail
	}

	if _, err := uc.accounts.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	hash, err := uc.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	appLogger.WithRequestID(ctx, uc.logger).Info("account created", zap.String("account_id", account.ID))
	return account, nil
}

// Login checks the credentials and issues a token for the account.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingLogin
	}

	account, err := uc.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			appLogger.WithClient(ctx, uc.logger).Warn("login rejected", zap.String("reason", "unknown email"))
			return nil, ErrEmailUnknown
		}
		return nil, err
	}

	ok, err := uc.passwords.Compare(account.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		appLogger.WithClient(ctx, uc.logger).Warn("login rejected",
			zap.String("reason", "password mismatch"),
			zap.String("account_id", account.ID),
		)
		return nil, ErrPasswordMismatch
	}

	token, err := uc.tokens.Issue(account.ID)
	if err != nil {
		return nil, err
	}

	account.PasswordHash = ""
	return &LoginResult{Token: token, Account: account}, nil
}
