package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Owner       primitive.ObjectID `bson:"owner"`
	Description string             `bson:"description"`
	DueDate     time.Time          `bson:"dueDate"`
	Priority    string             `bson:"priority"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{
		ID:          d.ID.Hex(),
		OwnerID:     d.Owner.Hex(),
		Description: d.Description,
		DueDate:     d.DueDate.UTC(),
		Priority:    domain.Priority(d.Priority),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type taskRepository struct {
	coll *mongodrv.Collection
}

// NewTaskRepository returns a MongoDB-backed task repository.
func NewTaskRepository(db *mongodrv.Database) repository.TaskRepository {
	return &taskRepository{coll: db.Collection("tasks")}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	var doc taskDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task := doc.toDomain()
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		owner, err := primitive.ObjectIDFromHex(filter.OwnerID)
		if err != nil {
			return []domain.Task{}, nil
		}
		query["owner"] = owner
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = domain.NewID()
	}
	oid, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return domain.ErrInvalidPayload
	}
	owner, err := primitive.ObjectIDFromHex(task.OwnerID)
	if err != nil {
		return domain.ErrInvalidPayload
	}
	task.Touch()

	_, err = r.coll.InsertOne(ctx, taskDocument{
		ID:          oid,
		Owner:       owner,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	})
	return err
}

// Update is a single-document find-and-modify; the owner field is never written.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	oid, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	update := bson.M{"$set": bson.M{
		"description": task.Description,
		"dueDate":     task.DueDate,
		"priority":    string(task.Priority),
		"updatedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	*task = doc.toDomain()
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
