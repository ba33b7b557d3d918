package todo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RahulNanda1810/todo/internal/logutil"
)

var (
	ErrEmptyText = errors.New("todo text is empty")
	ErrNotFound  = errors.New("todo not found")
)

// MongoStore performs owner-scoped CRUD against the todos collection.
type MongoStore struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("todos"), now: time.Now}
}

// Load fetches the full snapshot of the owner's todos, normalized for
// display. Documents that fail to decode are skipped.
func (s *MongoStore) Load(ctx context.Context, ownerID string) ([]Todo, error) {
	cur, err := s.col.Find(ctx, bson.M{"userId": ownerID})
	if err != nil {
		logutil.LogEvent("todos.load.failed", ownerID, map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	defer cur.Close(ctx)
	today := DateOf(s.now())
	todos := []Todo{}
	for cur.Next(ctx) {
		var t Todo
		if err := cur.Decode(&t); err == nil {
			todos = append(todos, Normalize(t, today))
		}
	}
	return todos, nil
}

// Add persists a new todo for the owner. Text is trimmed; empty text is
// rejected before anything is written. Due date defaults to today and
// priority to medium.
func (s *MongoStore) Add(ctx context.Context, ownerID, text, dueDate string, priority Priority) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	if dueDate == "" {
		dueDate = DateOf(s.now())
	}
	if !priority.Valid() {
		priority = PriorityMedium
	}
	return s.Create(ctx, Todo{
		UserID:   ownerID,
		Text:     text,
		Done:     false,
		DueDate:  dueDate,
		Priority: priority,
	})
}

// Create inserts t as-is, assigning id and creation timestamp if unset.
// The daily materializer uses this to write template instances.
func (s *MongoStore) Create(ctx context.Context, t Todo) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	if _, err := s.col.InsertOne(ctx, t); err != nil {
		logutil.LogEvent("todos.create.failed", t.UserID, map[string]interface{}{"error": err.Error()})
		return errors.New("failed to create todo")
	}
	return nil
}

// Toggle persists the negation of the stored done flag for the owner's todo.
func (s *MongoStore) Toggle(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	var existing Todo
	err := s.col.FindOne(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = s.col.UpdateOne(ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": bson.M{"done": !existing.Done}})
	return err
}

// Remove deletes the owner's todo by id.
func (s *MongoStore) Remove(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
