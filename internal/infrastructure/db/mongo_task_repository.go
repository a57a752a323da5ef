package db

import (
	"context"
	"errors"
	"time"

	"github.com/taskapi/backend/internal/core/ports"
	"github.com/taskapi/backend/internal/domain"
	"github.com/taskapi/backend/internal/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// taskDocument is the BSON shape of a task in the tasks collection.
type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	Priority    string             `bson:"priority"`
	DueDate     *time.Time         `bson:"dueDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *taskDocument) toDomain() *domain.Task {
	task := &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.TaskStatus(d.Status),
		Priority:    domain.TaskPriority(d.Priority),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		task.DueDate = &due
	}
	return task
}

type mongoTaskRepository struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewMongoTaskRepository(coll *mongo.Collection, log *logger.Logger) ports.TaskRepository {
	return &mongoTaskRepository{coll: coll, log: log}
}

// EnsureIndexes creates the indexes the tasks collection relies on. It is
// idempotent.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("idx_tasks_created_at"),
	})
	return err
}

func (r *mongoTaskRepository) Create(ctx context.Context, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := domain.NewTask(patch)
	if err != nil {
		return nil, err
	}

	now := mongoNow()
	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     mongoTime(task.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.log.Errorw("task_repo_create_failed", "title", doc.Title, "error", err)
		return nil, err
	}
	r.log.Infow("task_repo_create_ok", "id", doc.ID.Hex())
	return doc.toDomain(), nil
}

func (r *mongoTaskRepository) GetAll(ctx context.Context) ([]domain.Task, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		r.log.Errorw("task_repo_list_failed", "error", err)
		return nil, err
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.log.Errorw("task_repo_list_decode_failed", "error", err)
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, *docs[i].toDomain())
	}
	r.log.Infow("task_repo_list_ok", "count", len(tasks))
	return tasks, nil
}

func (r *mongoTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	var doc taskDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		r.log.Errorw("task_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *mongoTaskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if err := patch.Validate(false); err != nil {
		return nil, err
	}

	set := patchToSet(patch)
	set = append(set, bson.E{Key: "updatedAt", Value: mongoNow()})

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		r.log.Errorw("task_repo_update_failed", "id", id, "error", err)
		return nil, err
	}

	r.log.Infow("task_repo_update_ok", "id", id)
	return doc.toDomain(), nil
}

func (r *mongoTaskRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.log.Errorw("task_repo_delete_failed", "id", id, "error", err)
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	r.log.Infow("task_repo_delete_ok", "id", id)
	return nil
}

// patchToSet builds the $set document for the supplied fields only.
func patchToSet(patch domain.TaskPatch) bson.D {
	var scratch domain.Task
	scratch.Apply(patch)

	set := bson.D{}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: scratch.Title})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: scratch.Description})
	}
	if patch.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(scratch.Status)})
	}
	if patch.Priority != nil {
		set = append(set, bson.E{Key: "priority", Value: string(scratch.Priority)})
	}
	if patch.DueDate != nil {
		set = append(set, bson.E{Key: "dueDate", Value: *mongoTime(scratch.DueDate)})
	}
	return set
}

func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// BSON dates carry millisecond precision; truncate up front so the record
// returned from a write equals what a later read yields.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func mongoTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Millisecond)
	return &v
}
