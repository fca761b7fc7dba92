package boltdb

import (
	"context"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type accountRepository struct {
	db *DB
}

// NewAccountRepository returns a Bolt-backed account repository.
func NewAccountRepository(db *DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var account *domain.Account
	err := r.db.db.View(func(tx *bolt.Tx) error {
		var err error
		account, err = loadAccount(tx, id)
		return err
	})
	return account, err
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var account *domain.Account
	err := r.db.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(bucketAccountEmails).Get([]byte(domain.NormalizeEmail(email)))
		if id == nil {
			return domain.ErrAccountNotFound
		}
		var err error
		account, err = loadAccount(tx, string(id))
		return err
	})
	return account, err
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	if account == nil {
		return domain.ErrInvalidPayload
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if account.ID == "" {
		account.ID = domain.NewID()
	}
	account.Email = domain.NormalizeEmail(account.Email)
	account.Touch()

	return r.db.db.Update(func(tx *bolt.Tx) error {
		emails := tx.Bucket(bucketAccountEmails)
		if emails.Get([]byte(account.Email)) != nil {
			return domain.ErrEmailTaken
		}
		if err := emails.Put([]byte(account.Email), []byte(account.ID)); err != nil {
			return err
		}
		return put(tx.Bucket(bucketAccounts), account.ID, toAccountDoc(account))
	})
}

// accountDoc is the stored shape; unlike domain.Account it keeps the hash.
type accountDoc struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
	}
}

func loadAccount(tx *bolt.Tx, id string) (*domain.Account, error) {
	raw := tx.Bucket(bucketAccounts).Get([]byte(id))
	if raw == nil {
		return nil, domain.ErrAccountNotFound
	}
	var doc accountDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:           doc.ID,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt.UTC(),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}, nil
}
