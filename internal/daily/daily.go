// Package daily maintains recurring daily-task templates and materializes
// them into dated todo instances once per calendar day.
package daily

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RahulNanda1810/todo/internal/logutil"
	"github.com/RahulNanda1810/todo/internal/todo"
)

// Template is a recurring daily-task definition.
type Template struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"-"`
	Text      string             `bson:"text" json:"text"`
	Priority  todo.Priority      `bson:"priority,omitempty" json:"priority"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// TemplateStore is the persistence surface for templates.
type TemplateStore interface {
	List(ctx context.Context, ownerID string) ([]Template, error)
	Insert(ctx context.Context, t Template) (Template, error)
	Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// InstanceCreator writes the dated todo instances spawned from templates.
type InstanceCreator interface {
	Create(ctx context.Context, t todo.Todo) error
}

// Flags tracks which calendar dates have already been materialized per owner.
type Flags interface {
	IsMaterialized(ownerID, date string) bool
	MarkMaterialized(ownerID, date string) error
}

// Materializer drives the once-per-day template expansion.
type Materializer struct {
	templates TemplateStore
	todos     InstanceCreator
	flags     Flags
	now       func() time.Time
}

func NewMaterializer(templates TemplateStore, todos InstanceCreator, flags Flags) *Materializer {
	return &Materializer{templates: templates, todos: todos, flags: flags, now: time.Now}
}

// Load fetches the owner's templates and attempts today's materialization.
// The returned bool reports whether instances were created on this call.
func (m *Materializer) Load(ctx context.Context, ownerID string) ([]Template, bool, error) {
	templates, err := m.templates.List(ctx, ownerID)
	if err != nil {
		logutil.LogEvent("daily.load.failed", ownerID, map[string]interface{}{"error": err.Error()})
		return nil, false, err
	}
	created, err := m.MaterializeForToday(ctx, ownerID, templates)
	return templates, created, err
}

// MaterializeForToday creates one dated instance per template unless today's
// flag is already set, in which case it is a no-op. Individual creation
// failures are logged and skipped; the flag is set once the loop finishes.
func (m *Materializer) MaterializeForToday(ctx context.Context, ownerID string, templates []Template) (bool, error) {
	today := todo.DateOf(m.now())
	if m.flags.IsMaterialized(ownerID, today) {
		return false, nil
	}
	for _, tpl := range templates {
		if err := m.todos.Create(ctx, instanceFor(tpl, ownerID, today)); err != nil {
			logutil.LogEvent("daily.materialize.item_failed", ownerID, map[string]interface{}{
				"template": tpl.ID.Hex(),
				"error":    err.Error(),
			})
		}
	}
	if err := m.flags.MarkMaterialized(ownerID, today); err != nil {
		return true, err
	}
	return true, nil
}

// AddTemplate persists a new template and, independently of it, one todo
// instance for today from the captured text and priority. An instance
// failure is logged but does not roll back the template.
func (m *Materializer) AddTemplate(ctx context.Context, ownerID, text string, priority todo.Priority) (Template, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Template{}, todo.ErrEmptyText
	}
	if !priority.Valid() {
		priority = todo.PriorityMedium
	}
	saved, err := m.templates.Insert(ctx, Template{
		UserID:    ownerID,
		Text:      text,
		Priority:  priority,
		CreatedAt: m.now(),
	})
	if err != nil {
		return Template{}, err
	}
	inst := instanceFor(saved, ownerID, todo.DateOf(m.now()))
	if err := m.todos.Create(ctx, inst); err != nil {
		logutil.LogEvent("daily.instance.create_failed", ownerID, map[string]interface{}{
			"template": saved.ID.Hex(),
			"error":    err.Error(),
		})
	}
	return saved, nil
}

// Templates lists the owner's templates without materializing.
func (m *Materializer) Templates(ctx context.Context, ownerID string) ([]Template, error) {
	return m.templates.List(ctx, ownerID)
}

// RemoveTemplate deletes the template only; instances it already spawned
// stay in the todo list.
func (m *Materializer) RemoveTemplate(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	return m.templates.Delete(ctx, ownerID, id)
}

func instanceFor(tpl Template, ownerID, date string) todo.Todo {
	priority := tpl.Priority
	if !priority.Valid() {
		priority = todo.PriorityMedium
	}
	return todo.Todo{
		UserID:    ownerID,
		Text:      tpl.Text,
		Done:      false,
		DueDate:   date,
		Priority:  priority,
		FromDaily: true,
	}
}
