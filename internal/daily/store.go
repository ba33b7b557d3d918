package daily

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("daily task not found")

// MongoTemplates stores templates in the dailyTasks collection.
type MongoTemplates struct {
	col *mongo.Collection
	now func() time.Time
}

var _ TemplateStore = (*MongoTemplates)(nil)

func NewMongoTemplates(db *mongo.Database) *MongoTemplates {
	return &MongoTemplates{col: db.Collection("dailyTasks"), now: time.Now}
}

func (s *MongoTemplates) List(ctx context.Context, ownerID string) ([]Template, error) {
	cur, err := s.col.Find(ctx, bson.M{"userId": ownerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	templates := []Template{}
	for cur.Next(ctx) {
		var t Template
		if err := cur.Decode(&t); err == nil {
			templates = append(templates, t)
		}
	}
	return templates, nil
}

func (s *MongoTemplates) Insert(ctx context.Context, t Template) (Template, error) {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	if _, err := s.col.InsertOne(ctx, t); err != nil {
		return Template{}, errors.New("failed to create daily task")
	}
	return t, nil
}

func (s *MongoTemplates) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
