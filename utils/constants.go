package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the default time-to-live for admin access tokens
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the default time-to-live for admin refresh tokens
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// ContextKey is the type used for request-scoped context values.
type ContextKey string

// Request-scoped context keys set by handlers for flows and audit logging.
const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)
