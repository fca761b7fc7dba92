package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

// cachedAccount is the cached shape of an account. The password hash is never cached.
type cachedAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Commands is the subset of the Redis client used by the cache.
type Commands interface {
	Get(ctx context.Context, key string) *redislib.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redislib.StatusCmd
}

type accountCache struct {
	next   repository.AccountRepository
	client Commands
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewAccountCache wraps an account repository with a read-through cache for id lookups,
// which is the hot path of every authenticated request.
func NewAccountCache(next repository.AccountRepository, client Commands, ttl time.Duration, logger *zap.Logger) repository.AccountRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &accountCache{
		next:   next,
		client: client,
		prefix: "account:",
		ttl:    ttl,
		logger: logger,
	}
}

func (c *accountCache) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	result, err := c.client.Get(ctx, c.key(id)).Result()
	switch {
	case err == nil:
		var cached cachedAccount
		if jsonErr := json.Unmarshal([]byte(result), &cached); jsonErr == nil {
			return &domain.Account{
				ID:        cached.ID,
				Name:      cached.Name,
				Email:     cached.Email,
				CreatedAt: cached.CreatedAt,
				UpdatedAt: cached.UpdatedAt,
			}, nil
		}
	case !errors.Is(err, redislib.Nil):
		c.logger.Warn("account cache read failed", zap.String("account_id", id), zap.Error(err))
	}

	account, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, account)
	return account, nil
}

// GetByEmail bypasses the cache since login needs the password hash.
func (c *accountCache) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return c.next.GetByEmail(ctx, email)
}

func (c *accountCache) Create(ctx context.Context, account *domain.Account) error {
	if err := c.next.Create(ctx, account); err != nil {
		return err
	}
	c.store(ctx, account)
	return nil
}

func (c *accountCache) store(ctx context.Context, account *domain.Account) {
	payload, err := json.Marshal(cachedAccount{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(account.ID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("account cache write failed", zap.String("account_id", account.ID), zap.Error(err))
	}
}

func (c *accountCache) key(id string) string {
	return fmt.Sprintf("%s%s", c.prefix, id)
}
