package todo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Priority of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// DateLayout is the calendar-date form used for due dates. Dates in this
// form compare chronologically as plain strings.
const DateLayout = "2006-01-02"

// DateOf formats t as a calendar date.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Todo represents a task owned by a single user.
type Todo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"-"`
	Text      string             `bson:"text" json:"text"`
	Done      bool               `bson:"done" json:"done"`
	DueDate   string             `bson:"dueDate,omitempty" json:"dueDate"`
	Priority  Priority           `bson:"priority,omitempty" json:"priority"`
	FromDaily bool               `bson:"fromDailyTask,omitempty" json:"fromDailyTask,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// Normalize fills store defaults on a freshly decoded document and applies
// the soft carry-forward: an open task whose due date has passed is shown
// as due today. The stored document is never rewritten.
func Normalize(t Todo, today string) Todo {
	if t.DueDate == "" {
		t.DueDate = today
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	if !t.Done && t.DueDate < today {
		t.DueDate = today
	}
	return t
}
