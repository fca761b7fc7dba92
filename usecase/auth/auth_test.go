package auth

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/security"
	appLogger "github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/repository/boltdb"
)

func newTestUseCase(t *testing.T) (*UseCase, repository.Store, *security.Tokens) {
	t.Helper()
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := db.Store()
	tokens := security.NewTokens("secret", "taskboard", 0)
	return New(store.Accounts, security.NewPasswords(bcrypt.MinCost), tokens, nil), store, tokens
}

func TestSignupValidation(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   SignupInput
		want *domain.Error
	}{
		{"missing name", SignupInput{Email: "a@b.co", Password: "pass"}, ErrMissingFields},
		{"blank email", SignupInput{Name: "Ann", Email: "  ", Password: "pass"}, ErrMissingFields},
		{"missing password", SignupInput{Name: "Ann", Email: "a@b.co"}, ErrMissingFields},
		{"short password", SignupInput{Name: "Ann", Email: "a@b.co", Password: "abc"}, ErrShortPassword},
		{"short multibyte password", SignupInput{Name: "Ann", Email: "a@b.co", Password: "日本語"}, ErrShortPassword},
		{"bad email", SignupInput{Name: "Ann", Email: "not-an-email", Password: "pass"}, ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Signup(ctx, tc.in)
			assert.Equal(t, tc.want, err)
		})
	}
}

func TestSignupAcceptsFourCharacterPassword(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	account, err := uc.Signup(context.Background(), SignupInput{Name: "Ann", Email: "ann@example.com", Password: "pass"})
	require.NoError(t, err)
	assert.True(t, domain.IsValidID(account.ID))
	assert.NotEqual(t, "pass", account.PasswordHash)
}

func TestSignupAndLoginWithLongPassword(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()
	password := strings.Repeat("a", 80)

	_, err := uc.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@example.com", Password: password})
	require.NoError(t, err)

	_, err = uc.Login(ctx, "ann@example.com", password)
	require.NoError(t, err)

	_, err = uc.Signup(ctx, SignupInput{Name: "Kenji", Email: "kenji@example.com", Password: "日本語です"})
	require.NoError(t, err)
}

func TestSignupDuplicateEmailIsCaseInsensitive(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	first, err := uc.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@example.com", Password: "pass"})
	require.NoError(t, err)

	_, err = uc.Signup(ctx, SignupInput{Name: "Other", Email: "ANN@Example.com", Password: "word"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
	assert.Equal(t, "This email is already registered", domain.MessageOf(err))

	stored, err := store.Accounts.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Ann", stored.Name)
}

func TestLoginRoundTrip(t *testing.T) {
	uc, _, tokens := newTestUseCase(t)
	ctx := context.Background()

	account, err := uc.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@example.com", Password: "pass"})
	require.NoError(t, err)

	result, err := uc.Login(ctx, "Ann@Example.com", "pass")
	require.NoError(t, err)
	assert.Empty(t, result.Account.PasswordHash)
	assert.Equal(t, account.ID, result.Account.ID)

	id, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, id)
}

func TestLoginFailures(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@example.com", Password: "pass"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, "", "pass")
	assert.Equal(t, ErrMissingLogin, err)

	_, err = uc.Login(ctx, "bob@example.com", "pass")
	assert.Equal(t, ErrEmailUnknown, err)

	_, err = uc.Login(ctx, "ann@example.com", "wrong")
	assert.Equal(t, ErrPasswordMismatch, err)
	assert.Equal(t, "Password incorrect!!", domain.MessageOf(err))
}

func TestLoginRejectionIsLoggedWithRequestContext(t *testing.T) {
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	core, logs := observer.New(zapcore.InfoLevel)
	uc := New(db.Store().Accounts, security.NewPasswords(bcrypt.MinCost), security.NewTokens("secret", "", 0), zap.New(core))

	ctx := appLogger.ContextWithRequestID(context.Background(), "req-7")
	ctx = appLogger.ContextWithClient(ctx, "10.0.0.1:5000", "taskctl")

	account, err := uc.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@example.com", Password: "pass"})
	require.NoError(t, err)
	created := logs.FilterMessage("account created").All()
	require.Len(t, created, 1)
	assert.Equal(t, "req-7", created[0].ContextMap()["request_id"])

	_, err = uc.Login(ctx, "ann@example.com", "wrong")
	require.Equal(t, ErrPasswordMismatch, err)

	rejected := logs.FilterMessage("login rejected").All()
	require.Len(t, rejected, 1)
	fields := rejected[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "10.0.0.1:5000", fields["remote_addr"])
	assert.Equal(t, "taskctl", fields["user_agent"])
	assert.Equal(t, "password mismatch", fields["reason"])
	assert.Equal(t, account.ID, fields["account_id"])
}
