package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RahulNanda1810/todo/internal/auth"
)

const (
	userKey  = "user"
	tokenKey = "idToken"
)

// requireUser is the session gate: requests without a verified identity
// are turned away towards the login surface.
func (s *Server) requireUser(c *gin.Context) {
	idToken := auth.ExtractIDToken(c.GetHeader("Authorization"))
	u, err := s.verifier.Verify(c.Request.Context(), idToken)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "You are not logged in. Please login again.",
			"redirect": "/login",
		})
		return
	}
	c.Set(userKey, u)
	c.Set(tokenKey, idToken)
	c.Next()
}

func currentUser(c *gin.Context) *auth.User {
	v, _ := c.Get(userKey)
	u, _ := v.(*auth.User)
	return u
}
