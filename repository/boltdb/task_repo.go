package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type taskRepository struct {
	db *DB
}

// NewTaskRepository returns a Bolt-backed task repository.
func NewTaskRepository(db *DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var task *domain.Task
	err := r.db.db.View(func(tx *bolt.Tx) error {
		var err error
		task, err = loadTask(tx, id)
		return err
	})
	return task, err
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0)
	err := r.db.db.View(func(tx *bolt.Tx) error {
		if filter.OwnerID == "" {
			return tx.Bucket(bucketTasks).ForEach(func(k, v []byte) error {
				task, err := decodeTask(v)
				if err != nil {
					return err
				}
				tasks = append(tasks, *task)
				return nil
			})
		}

		prefix := ownerKey(filter.OwnerID, "")
		c := tx.Bucket(bucketTaskOwners).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			task, err := loadTask(tx, string(v))
			if err != nil {
				return err
			}
			tasks = append(tasks, *task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if task.ID == "" {
		task.ID = domain.NewID()
	}
	task.Touch()

	return r.db.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketTaskOwners).Put(ownerKey(task.OwnerID, task.ID), []byte(task.ID)); err != nil {
			return err
		}
		return put(tx.Bucket(bucketTasks), task.ID, toTaskDoc(task))
	})
}

// Update rewrites the mutable fields inside one transaction. The stored owner wins.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.db.Update(func(tx *bolt.Tx) error {
		stored, err := loadTask(tx, task.ID)
		if err != nil {
			return err
		}
		stored.Description = task.Description
		stored.DueDate = task.DueDate
		stored.Priority = task.Priority
		stored.Touch()
		*task = *stored
		return put(tx.Bucket(bucketTasks), stored.ID, toTaskDoc(stored))
	})
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.db.Update(func(tx *bolt.Tx) error {
		stored, err := loadTask(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketTaskOwners).Delete(ownerKey(stored.OwnerID, stored.ID)); err != nil {
			return err
		}
		return tx.Bucket(bucketTasks).Delete([]byte(id))
	})
}

type taskDoc struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskDoc(t *domain.Task) taskDoc {
	return taskDoc{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Description: t.Description,
		DueDate:     t.DueDate.UTC(),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func loadTask(tx *bolt.Tx, id string) (*domain.Task, error) {
	raw := tx.Bucket(bucketTasks).Get([]byte(id))
	if raw == nil {
		return nil, domain.ErrTaskNotFound
	}
	return decodeTask(raw)
}

func decodeTask(raw []byte) (*domain.Task, error) {
	var doc taskDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &domain.Task{
		ID:          doc.ID,
		OwnerID:     doc.OwnerID,
		Description: doc.Description,
		DueDate:     doc.DueDate.UTC(),
		Priority:    domain.Priority(doc.Priority),
		CreatedAt:   doc.CreatedAt.UTC(),
		UpdatedAt:   doc.UpdatedAt.UTC(),
	}, nil
}
