package constants

// ContextKeyRequestID is the gin context key set by the request ID middleware
const ContextKeyRequestID = "requestID"

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"
