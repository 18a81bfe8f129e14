package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/adekomen/portfolio/internal/analytics"
	"github.com/adekomen/portfolio/internal/reqlog"

	"github.com/gin-gonic/gin"
)

// RequestIDMiddleware ensures every request has a stable request ID.
// - Reads X-Request-Id header if present
// - Otherwise generates a new one
// - Stores it in both Gin context and the request context
// - Echoes it back in response header X-Request-Id
// - Logs method, path, status and latency
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-Id")
		if strings.TrimSpace(rid) == "" {
			rid = newRequestID()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(reqlog.WithRequestID(c.Request.Context(), rid))
		c.Writer.Header().Set("X-Request-Id", rid)

		start := time.Now()
		c.Next()

		log.Printf(
			"[req] id=%s method=%s path=%s status=%d latency=%s",
			rid,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

func newRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}
	return time.Now().Format("20060102T150405.000000000")
}

// sessionMiddleware resolves the visitor id once per request.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("session_id", sessionID(c))
		c.Next()
	}
}

// visitorTrackingMiddleware records page visits with hashed IPs.
// Static files, admin pages and DNT requests are skipped.
func visitorTrackingMiddleware(t *analytics.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if t == nil || analytics.SkipPath(path) || c.Request.Method != "GET" {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		rid := c.GetString("request_id")
		go func() {
			ctx, cancel := context.WithTimeout(reqlog.WithRequestID(context.Background(), rid), 5*time.Second)
			defer cancel()
			if err := t.TrackVisit(ctx, ip, ua, path); err != nil {
				reqlog.New(ctx).Error("track_visit", err)
			}
		}()
		c.Next()
	}
}
