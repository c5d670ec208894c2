package fakebackend

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const headerRequestID = "X-Request-ID"

func (b *Backend) recordRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		b.mu.Lock()
		b.requestIDs = append(b.requestIDs, c.GetHeader(headerRequestID))
		b.mu.Unlock()

		c.Header(headerRequestID, c.GetHeader(headerRequestID))
		c.Next()
	}
}

func (b *Backend) failure() gin.HandlerFunc {
	return func(c *gin.Context) {
		b.mu.Lock()
		status := b.failStatus
		b.mu.Unlock()

		if status != 0 {
			c.AbortWithStatusJSON(status, gin.H{"detail": http.StatusText(status)})
			return
		}
		c.Next()
	}
}

// requireToken resolves the bearer token to a user id stored under "user_id".
func (b *Backend) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Not authenticated"})
			return
		}

		b.mu.Lock()
		userID, ok := b.tokens[token]
		b.mu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
