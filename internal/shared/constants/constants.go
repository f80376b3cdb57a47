package constants

const (
	// HTTP Headers
	HeaderXRequestID = "X-Request-ID"
	// HeaderXUserID carries the shopper identity set by the upstream auth layer.
	HeaderXUserID = "X-User-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
)
