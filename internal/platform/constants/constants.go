// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire service.

It defines default timeouts, session parameters, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Sessions: Cookie and Redis key taxonomy.
  - Credentials: Length bounds for usernames and passwords.

Using this package keeps magic strings and magic numbers out of the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "snipbin"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Sessions

const (
	// DefaultSessionTTL is both the cookie Max-Age and the Redis TTL of a session entry.
	DefaultSessionTTL = 24 * time.Hour

	// SessionTokenLength is the byte length of the random session token.
	SessionTokenLength = 32

	// SessionCookiePath scopes the session cookie to the whole site.
	SessionCookiePath = "/"

	// SessionIssuer is the 'iss' claim of the signed session cookie.
	SessionIssuer = "snipbin"
)

// # Credentials

const (
	UsernameMinLength = 3
	UsernameMaxLength = 1000
	PasswordMinLength = 8
	PasswordMaxLength = 2000

	// DefaultBcryptCost matches the cost the service was originally deployed with.
	DefaultBcryptCost = 8
)

// # Snippet Limits

const (
	SnippetTitleMaxLength       = 200
	SnippetLanguageMaxLength    = 50
	SnippetDescriptionMaxLength = 2000
	SnippetContentMaxLength     = 100000
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Redis Prefixes (Session Taxonomy)

const (
	RedisPrefixSession = "session:data:"
	RedisPrefixFlash   = "session:flash:"
)
