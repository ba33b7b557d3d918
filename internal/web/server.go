// Package web exposes the HTTP API: the auth surface (login), the gated
// todo surface, and health.
package web

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RahulNanda1810/todo/internal/auth"
	"github.com/RahulNanda1810/todo/internal/daily"
	"github.com/RahulNanda1810/todo/internal/todo"
)

// TodoStore is the task-store surface the handlers need.
type TodoStore interface {
	Load(ctx context.Context, ownerID string) ([]todo.Todo, error)
	Add(ctx context.Context, ownerID, text, dueDate string, priority todo.Priority) error
	Toggle(ctx context.Context, ownerID string, id primitive.ObjectID) error
	Remove(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// DailyStore drives templates and their once-per-day materialization.
type DailyStore interface {
	Load(ctx context.Context, ownerID string) ([]daily.Template, bool, error)
	Templates(ctx context.Context, ownerID string) ([]daily.Template, error)
	AddTemplate(ctx context.Context, ownerID, text string, priority todo.Priority) (daily.Template, error)
	RemoveTemplate(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// TokenVerifier checks bearer tokens and performs profile operations.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*auth.User, error)
	SetDisplayName(ctx context.Context, uid, name string) error
	Revoke(ctx context.Context, uid string) error
}

// Accounts is the provider's email/password surface.
type Accounts interface {
	SignIn(ctx context.Context, email, password string) (*auth.Credential, error)
	SignUp(ctx context.Context, email, password string) (*auth.Credential, error)
	SendVerificationEmail(ctx context.Context, idToken string) error
}

// Prefs is the per-owner preference store.
type Prefs interface {
	DarkMode(ownerID string) bool
	ToggleDarkMode(ownerID string) (bool, error)
}

// Server is the todo web server
type Server struct {
	todos    TodoStore
	daily    DailyStore
	prefs    Prefs
	verifier TokenVerifier
	accounts Accounts
	router   *gin.Engine
	now      func() time.Time
}

// NewServer creates a new web server
func NewServer(todos TodoStore, dailyStore DailyStore, prefs Prefs, verifier TokenVerifier, accounts Accounts) *Server {
	router := gin.Default()

	s := &Server{
		todos:    todos,
		daily:    dailyStore,
		prefs:    prefs,
		verifier: verifier,
		accounts: accounts,
		router:   router,
		now:      time.Now,
	}

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/auth/login", s.handleLogin)
		api.POST("/auth/signup", s.handleSignup)

		gated := api.Group("", s.requireUser)
		{
			gated.POST("/auth/logout", s.handleLogout)
			gated.POST("/auth/resend-verification", s.handleResendVerification)
			gated.GET("/session", s.handleSession)
			gated.GET("/todos", s.handleListTodos)
			gated.POST("/todos", s.handleAddTodo)
			gated.GET("/todos/search", s.handleSearchTodos)
			gated.POST("/todos/:id/toggle", s.handleToggleTodo)
			gated.DELETE("/todos/:id", s.handleRemoveTodo)
			gated.GET("/daily-tasks", s.handleListDailyTasks)
			gated.POST("/daily-tasks", s.handleAddDailyTask)
			gated.DELETE("/daily-tasks/:id", s.handleRemoveDailyTask)
			gated.POST("/prefs/dark-mode", s.handleToggleDarkMode)
		}
	}

	return s
}

// Run starts the web server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
