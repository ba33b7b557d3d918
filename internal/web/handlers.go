package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RahulNanda1810/todo/internal/auth"
	"github.com/RahulNanda1810/todo/internal/daily"
	"github.com/RahulNanda1810/todo/internal/logutil"
	"github.com/RahulNanda1810/todo/internal/todo"
)

const errLoadTodos = "Error loading todos. Please try again."

// Auth handlers

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cred, err := s.accounts.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uid":          cred.UID,
		"idToken":      cred.IDToken,
		"refreshToken": cred.RefreshToken,
		"redirect":     "/todos",
	})
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Password rules are checked locally; no provider call on failure.
	if msg := auth.ValidatePassword(req.Password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	cred, err := s.accounts.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": auth.UserMessage(err)})
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		if err := s.verifier.SetDisplayName(c.Request.Context(), cred.UID, name); err != nil {
			logutil.LogEvent("auth.signup.display_name_failed", cred.UID, map[string]interface{}{"error": err.Error()})
		}
	}

	if err := s.accounts.SendVerificationEmail(c.Request.Context(), cred.IDToken); err != nil {
		logutil.LogEvent("auth.signup.verification_failed", cred.UID, map[string]interface{}{"error": err.Error()})
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User successfully created. Verification email sent."})
}

func (s *Server) handleResendVerification(c *gin.Context) {
	if err := s.accounts.SendVerificationEmail(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": auth.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification email resent! Check your inbox or spam."})
}

func (s *Server) handleLogout(c *gin.Context) {
	u := currentUser(c)
	if err := s.verifier.Revoke(c.Request.Context(), u.UID); err != nil {
		logutil.LogEvent("auth.logout.revoke_failed", u.UID, map[string]interface{}{"error": err.Error()})
	}
	c.JSON(http.StatusOK, gin.H{"redirect": "/login"})
}

func (s *Server) handleSession(c *gin.Context) {
	u := currentUser(c)
	sess := auth.NewSession(u, s.now())
	c.JSON(http.StatusOK, gin.H{
		"uid":      sess.UID,
		"name":     sess.Name,
		"greeting": sess.Greeting,
		"darkMode": s.prefs.DarkMode(u.UID),
	})
}

// Todo handlers

func (s *Server) handleListTodos(c *gin.Context) {
	u := currentUser(c)
	list, err := s.todos.Load(c.Request.Context(), u.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadTodos})
		return
	}

	filter := todo.ParseFilter(c.DefaultQuery("filter", "today"))
	today := todo.DateOf(s.now())
	c.JSON(http.StatusOK, gin.H{
		"filter": filter,
		"todos":  todo.Filtered(list, filter, today),
		"stats":  todo.Summarize(list, today),
	})
}

type addTodoRequest struct {
	Text     string        `json:"text"`
	DueDate  string        `json:"dueDate"`
	Priority todo.Priority `json:"priority"`
}

func (s *Server) handleAddTodo(c *gin.Context) {
	var req addTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task text is required"})
		return
	}

	u := currentUser(c)
	if err := s.todos.Add(c.Request.Context(), u.UID, req.Text, req.DueDate, req.Priority); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add task. Please try again."})
		return
	}
	s.respondWithReload(c, u.UID, http.StatusCreated)
}

func (s *Server) handleToggleTodo(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	u := currentUser(c)
	if err := s.todos.Toggle(c.Request.Context(), u.UID, id); err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found or not authorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update task. Please try again."})
		return
	}
	s.respondWithReload(c, u.UID, http.StatusOK)
}

func (s *Server) handleRemoveTodo(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	u := currentUser(c)
	if err := s.todos.Remove(c.Request.Context(), u.UID, id); err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found or not authorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete task. Please try again."})
		return
	}
	s.respondWithReload(c, u.UID, http.StatusOK)
}

func (s *Server) handleSearchTodos(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter required"})
		return
	}

	u := currentUser(c)
	list, err := s.todos.Load(c.Request.Context(), u.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadTodos})
		return
	}
	matches := todo.Search(list, query)
	c.JSON(http.StatusOK, gin.H{"todos": matches, "count": len(matches)})
}

// Every mutation answers with a freshly reloaded full snapshot; clients
// never patch locally.
func (s *Server) respondWithReload(c *gin.Context, ownerID string, status int) {
	list, err := s.todos.Load(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadTodos})
		return
	}
	today := todo.DateOf(s.now())
	c.JSON(status, gin.H{
		"todos": list,
		"stats": todo.Summarize(list, today),
	})
}

// Daily task handlers

func (s *Server) handleListDailyTasks(c *gin.Context) {
	u := currentUser(c)
	templates, created, err := s.daily.Load(c.Request.Context(), u.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading daily tasks. Please try again."})
		return
	}

	resp := gin.H{"dailyTasks": templates, "materialized": created}
	if created {
		// materialization changed the todo list, hand back the new snapshot
		if list, err := s.todos.Load(c.Request.Context(), u.UID); err == nil {
			resp["todos"] = list
		}
	}
	c.JSON(http.StatusOK, resp)
}

type addDailyTaskRequest struct {
	Text     string        `json:"text"`
	Priority todo.Priority `json:"priority"`
}

func (s *Server) handleAddDailyTask(c *gin.Context) {
	var req addDailyTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task text is required"})
		return
	}

	u := currentUser(c)
	saved, err := s.daily.AddTemplate(c.Request.Context(), u.UID, req.Text, req.Priority)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add daily task. Please try again."})
		return
	}

	templates, _, err := s.daily.Load(c.Request.Context(), u.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading daily tasks. Please try again."})
		return
	}
	list, err := s.todos.Load(c.Request.Context(), u.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadTodos})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"dailyTask":  saved,
		"dailyTasks": templates,
		"todos":      list,
	})
}

func (s *Server) handleRemoveDailyTask(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid daily task id"})
		return
	}

	u := currentUser(c)
	if err := s.daily.RemoveTemplate(c.Request.Context(), u.UID, id); err != nil {
		if errors.Is(err, daily.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "daily task not found or not authorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete daily task. Please try again."})
		return
	}

	templates, err := s.daily.Templates(c.Request.Context(), u.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading daily tasks. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dailyTasks": templates})
}

// Preference handlers

func (s *Server) handleToggleDarkMode(c *gin.Context) {
	u := currentUser(c)
	on, err := s.prefs.ToggleDarkMode(u.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save preference. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"darkMode": on})
}

// Health

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": s.now(),
		"version":   "1.0.0",
	})
}
