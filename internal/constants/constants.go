package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUser      = "user"
	ContextKeyClaims    = "claims"
	ContextKeyRequestID = "request_id"
	ContextKeyTask      = "task"
)

// Headers
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	BearerScheme        = "Bearer"
	TokenType           = "bearer"
)

// Validation
const (
	MinPasswordLength = 8
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

// Tokens
const (
	DefaultTokenTTL      = 30 * time.Minute
	RevokedTokenPrefix   = "revoked:"
	NotificationsChannel = "notifications"
)

// CommentNotificationFormat is the message sent to a task's assignee when someone else comments.
const CommentNotificationFormat = "New comment on task: %s"
