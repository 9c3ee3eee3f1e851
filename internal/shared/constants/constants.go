package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 25
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUsername  = "username"
	ContextKeyRequestID = "request_id"

	// Redis key prefixes
	RedisKeyUnreadIssues   = "tracker:unread"
	RedisKeyLoginRateLimit = "tracker:ratelimit:login"
)
