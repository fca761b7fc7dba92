package boltdb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskboard/repository"
)

var (
	bucketAccounts      = []byte("accounts")
	bucketAccountEmails = []byte("account_emails")
	bucketTasks         = []byte("tasks")
	bucketTaskOwners    = []byte("task_owners")
)

// DB wraps BoltDB as an embedded document store. Records are JSON documents keyed
// by id, with secondary index buckets maintained in the same transaction.
type DB struct {
	db *bolt.DB
}

// Open initializes the BoltDB file and ensures the buckets exist.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketAccounts, bucketAccountEmails, bucketTasks, bucketTaskOwners} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

// Store exposes the repositories backed by this file.
func (d *DB) Store() repository.Store {
	return repository.Store{
		Name:     "bolt",
		Accounts: NewAccountRepository(d),
		Tasks:    NewTaskRepository(d),
		Ping: func(ctx context.Context) error {
			return d.db.View(func(tx *bolt.Tx) error { return nil })
		},
		Close: func(ctx context.Context) error { return d.Close() },
	}
}

// Close closes the Bolt database.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func put(b *bolt.Bucket, key string, doc interface{}) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), payload)
}

func ownerKey(ownerID, taskID string) []byte {
	return []byte(ownerID + "/" + taskID)
}
