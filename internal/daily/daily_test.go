package daily

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RahulNanda1810/todo/internal/todo"
)

var errMockStore = errors.New("mock store error")

// mockTemplates implements TemplateStore for testing
type mockTemplates struct {
	ListFunc   func(ctx context.Context, ownerID string) ([]Template, error)
	InsertFunc func(ctx context.Context, t Template) (Template, error)
	DeleteFunc func(ctx context.Context, ownerID string, id primitive.ObjectID) error
	Inserted   []Template
}

func (m *mockTemplates) List(ctx context.Context, ownerID string) ([]Template, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTemplates) Insert(ctx context.Context, t Template) (Template, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, t)
	}
	t.ID = primitive.NewObjectID()
	m.Inserted = append(m.Inserted, t)
	return t, nil
}

func (m *mockTemplates) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	return nil
}

// mockCreator records created todo instances
type mockCreator struct {
	CreateFunc func(ctx context.Context, t todo.Todo) error
	Created    []todo.Todo
}

func (m *mockCreator) Create(ctx context.Context, t todo.Todo) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, t); err != nil {
			return err
		}
	}
	m.Created = append(m.Created, t)
	return nil
}

// mockFlags is an in-memory idempotency flag set
type mockFlags struct {
	set map[string]bool
}

func newMockFlags() *mockFlags { return &mockFlags{set: map[string]bool{}} }

func (m *mockFlags) IsMaterialized(ownerID, date string) bool {
	return m.set[ownerID+"|"+date]
}

func (m *mockFlags) MarkMaterialized(ownerID, date string) error {
	m.set[ownerID+"|"+date] = true
	return nil
}

func newTestMaterializer(templates TemplateStore, todos InstanceCreator, flags Flags) *Materializer {
	m := NewMaterializer(templates, todos, flags)
	m.now = func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC) }
	return m
}

func TestMaterializeForToday_Scenario(t *testing.T) {
	is := is.New(t)

	templates := &mockTemplates{ListFunc: func(ctx context.Context, ownerID string) ([]Template, error) {
		return []Template{{ID: primitive.NewObjectID(), UserID: ownerID, Text: "Drink water", Priority: todo.PriorityMedium}}, nil
	}}
	creator := &mockCreator{}
	flags := newMockFlags()
	m := newTestMaterializer(templates, creator, flags)

	list, created, err := m.Load(context.Background(), "user-1")
	is.NoErr(err)
	is.True(created)
	is.Equal(len(list), 1)
	is.Equal(len(creator.Created), 1)

	inst := creator.Created[0]
	is.Equal(inst.Text, "Drink water")
	is.Equal(inst.Done, false)
	is.Equal(inst.DueDate, "2025-06-15")
	is.Equal(inst.Priority, todo.PriorityMedium)
	is.True(inst.FromDaily)
	is.True(flags.IsMaterialized("user-1", "2025-06-15"))
}

func TestMaterializeForToday_Idempotent(t *testing.T) {
	is := is.New(t)

	tpl := Template{ID: primitive.NewObjectID(), UserID: "user-1", Text: "Stretch"}
	templates := &mockTemplates{ListFunc: func(ctx context.Context, ownerID string) ([]Template, error) {
		return []Template{tpl}, nil
	}}
	creator := &mockCreator{}
	m := newTestMaterializer(templates, creator, newMockFlags())

	_, created, err := m.Load(context.Background(), "user-1")
	is.NoErr(err)
	is.True(created)

	_, created, err = m.Load(context.Background(), "user-1")
	is.NoErr(err)
	is.True(!created) // second load on the same date is a no-op

	is.Equal(len(creator.Created), 1) // exactly one instance per template in total
}

func TestMaterializeForToday_ContinuesPastItemFailures(t *testing.T) {
	is := is.New(t)

	templates := []Template{
		{ID: primitive.NewObjectID(), Text: "first"},
		{ID: primitive.NewObjectID(), Text: "second"},
		{ID: primitive.NewObjectID(), Text: "third"},
	}
	calls := 0
	creator := &mockCreator{CreateFunc: func(ctx context.Context, t todo.Todo) error {
		calls++
		if calls == 2 {
			return errMockStore
		}
		return nil
	}}
	flags := newMockFlags()
	m := newTestMaterializer(&mockTemplates{}, creator, flags)

	created, err := m.MaterializeForToday(context.Background(), "user-1", templates)
	is.NoErr(err)
	is.True(created)
	is.Equal(calls, 3)                // the loop keeps going past the failure
	is.Equal(len(creator.Created), 2) // only the successful instances landed
	is.True(flags.IsMaterialized("user-1", "2025-06-15"))
}

func TestAddTemplate(t *testing.T) {
	is := is.New(t)

	templates := &mockTemplates{}
	creator := &mockCreator{}
	m := newTestMaterializer(templates, creator, newMockFlags())

	saved, err := m.AddTemplate(context.Background(), "user-1", "  Drink water  ", "")
	is.NoErr(err)
	is.Equal(saved.Text, "Drink water")           // trimmed
	is.Equal(saved.Priority, todo.PriorityMedium) // default priority
	is.Equal(len(templates.Inserted), 1)
	is.Equal(len(creator.Created), 1) // one instance for today, immediately
	is.Equal(creator.Created[0].DueDate, "2025-06-15")
}

func TestAddTemplate_EmptyTextIsNoop(t *testing.T) {
	is := is.New(t)

	templates := &mockTemplates{}
	creator := &mockCreator{}
	m := newTestMaterializer(templates, creator, newMockFlags())

	_, err := m.AddTemplate(context.Background(), "user-1", "   ", todo.PriorityHigh)
	is.True(errors.Is(err, todo.ErrEmptyText))
	is.Equal(len(templates.Inserted), 0)
	is.Equal(len(creator.Created), 0)
}

func TestAddTemplate_InstanceFailureKeepsTemplate(t *testing.T) {
	is := is.New(t)

	templates := &mockTemplates{}
	creator := &mockCreator{CreateFunc: func(ctx context.Context, t todo.Todo) error {
		return errMockStore
	}}
	m := newTestMaterializer(templates, creator, newMockFlags())

	saved, err := m.AddTemplate(context.Background(), "user-1", "Journal", todo.PriorityLow)
	is.NoErr(err) // instance failure does not roll back the template
	is.Equal(saved.Text, "Journal")
	is.Equal(len(templates.Inserted), 1)
	is.Equal(len(creator.Created), 0)
}

func TestRemoveTemplate_KeepsInstances(t *testing.T) {
	is := is.New(t)

	deleted := []primitive.ObjectID{}
	templates := &mockTemplates{DeleteFunc: func(ctx context.Context, ownerID string, id primitive.ObjectID) error {
		deleted = append(deleted, id)
		return nil
	}}
	creator := &mockCreator{}
	m := newTestMaterializer(templates, creator, newMockFlags())

	id := primitive.NewObjectID()
	is.NoErr(m.RemoveTemplate(context.Background(), "user-1", id))
	is.Equal(deleted, []primitive.ObjectID{id})
	is.Equal(len(creator.Created), 0) // no todo writes on template removal
}
