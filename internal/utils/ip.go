package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP returns the client address used for rate limiting and request logs.
// The site sits behind a reverse proxy, so X-Real-IP wins, then the leftmost
// X-Forwarded-For entry, then the socket address.
func GetRealIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		client, _, _ := strings.Cut(forwardedFor, ",")
		if client = strings.TrimSpace(client); client != "" {
			return client
		}
	}

	return c.ClientIP()
}
