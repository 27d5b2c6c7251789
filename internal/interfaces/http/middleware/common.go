// Package middleware provides the gin middleware of the returns API.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/logger"
)

const (
	// RequestIDHeader carries the correlation id in and out
	RequestIDHeader = "X-Request-ID"
	// ActorHeader names the staff member performing the request
	ActorHeader = "X-Actor"

	// RequestIDKey, ActorKey and ErrorCodeKey are the gin context keys
	RequestIDKey = "request_id"
	ActorKey     = "actor"
	ErrorCodeKey = "error_code"

	// DefaultActor is recorded when no actor header is sent
	DefaultActor = "system"

	// MaxRequestIDLength bounds client-supplied request ids
	MaxRequestIDLength = 128
	// MaxActorLength bounds client-supplied actor names
	MaxActorLength = 100
)

// RequestID assigns each request an id, echoes it in the response header and
// stores it on both the gin and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		if len(requestID) > MaxRequestIDLength {
			requestID = requestID[:MaxRequestIDLength]
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// Actor resolves the acting staff member from the X-Actor header.
// Authentication is handled upstream; the header is trusted as given.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if actor == "" {
			actor = DefaultActor
		}
		if len(actor) > MaxActorLength {
			actor = actor[:MaxActorLength]
		}
		c.Set(ActorKey, actor)
		c.Request = c.Request.WithContext(logger.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// GetRequestID returns the request id assigned by RequestID
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// GetActor returns the actor resolved by Actor, or DefaultActor
func GetActor(c *gin.Context) string {
	if actor := c.GetString(ActorKey); actor != "" {
		return actor
	}
	return DefaultActor
}

// Secure adds the standard security headers to API responses
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		c.Next()
	}
}
