package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
)

type fakeCommands struct {
	mu      sync.Mutex
	data    map[string]string
	failGet error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{data: map[string]string{}}
}

func (f *fakeCommands) Get(_ context.Context, key string) *redislib.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return redislib.NewStringResult("", f.failGet)
	}
	val, ok := f.data[key]
	if !ok {
		return redislib.NewStringResult("", redislib.Nil)
	}
	return redislib.NewStringResult(val, nil)
}

func (f *fakeCommands) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redislib.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redislib.NewStatusResult("OK", nil)
}

type countingAccounts struct {
	accounts map[string]*domain.Account
	byID     int
}

func (c *countingAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	c.byID++
	acc, ok := c.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *acc
	return &copied, nil
}

func (c *countingAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, acc := range c.accounts {
		if acc.Email == email {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (c *countingAccounts) Create(_ context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = domain.NewID()
	}
	c.accounts[account.ID] = account
	return nil
}

func TestAccountCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	id := domain.NewID()
	backing := &countingAccounts{accounts: map[string]*domain.Account{
		id: {ID: id, Name: "Ann", Email: "ann@example.com", PasswordHash: "hash"},
	}}
	cmds := newFakeCommands()
	cache := NewAccountCache(backing, cmds, time.Minute, nil)

	first, err := cache.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hash", first.PasswordHash)

	second, err := cache.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, backing.byID)
	assert.Equal(t, "Ann", second.Name)
	assert.Empty(t, second.PasswordHash)
	assert.NotContains(t, cmds.data["account:"+id], "hash")
}

func TestAccountCacheMissingAccount(t *testing.T) {
	backing := &countingAccounts{accounts: map[string]*domain.Account{}}
	cache := NewAccountCache(backing, newFakeCommands(), time.Minute, nil)

	_, err := cache.GetByID(context.Background(), domain.NewID())
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestAccountCacheFallsBackWhenRedisFails(t *testing.T) {
	id := domain.NewID()
	backing := &countingAccounts{accounts: map[string]*domain.Account{id: {ID: id, Name: "Bob"}}}
	cmds := newFakeCommands()
	cmds.failGet = errors.New("connection refused")
	cache := NewAccountCache(backing, cmds, time.Minute, nil)

	acc, err := cache.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Bob", acc.Name)
}

func TestAccountCacheCreatePopulates(t *testing.T) {
	ctx := context.Background()
	backing := &countingAccounts{accounts: map[string]*domain.Account{}}
	cmds := newFakeCommands()
	cache := NewAccountCache(backing, cmds, time.Minute, nil)

	acc := &domain.Account{Name: "Cid", Email: "cid@example.com", PasswordHash: "h"}
	require.NoError(t, cache.Create(ctx, acc))

	_, err := cache.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, backing.byID)
}
