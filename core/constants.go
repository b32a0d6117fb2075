package core

// HTTP-related constants for REST operations

// HTTP Header Names
const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
	HeaderRequestID     = "X-Request-ID"
)

// HTTP Content Types
const (
	ContentTypeJSON           = "application/json"
	ContentTypeMultipartForm  = "multipart/form-data"
	ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"
	ContentTypeOctetStream    = "application/octet-stream"
)

// HTTP Authentication Types
const (
	AuthTypeBearer = "Bearer"
)

// Environment variables understood by the client.
const (
	EnvLogLevel = "NDP_EP_LOG"
)

const (
	tokenPath        = "/token"
	defaultUserAgent = "ndp-ep-go-client"
)
