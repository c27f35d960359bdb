// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and cookie configuration.
  - Media: Image compression bounds and storage prefixes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "mangrovenet-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Multipart content submissions carry binaries, so this is more generous
	// than a JSON-only API would need.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 60 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "mangrovenet.org"

	// AccessTokenTTL is the lifetime of an issued access token.
	AccessTokenTTL = 1 * time.Hour

	// AccessTokenCookieName is the name of the cookie that carries the access token.
	AccessTokenCookieName = "token"

	// AccessTokenCookiePath is the scoped path for the access token cookie.
	AccessTokenCookiePath = "/"
)

// # Media & Uploads

const (
	// MaxUploadMemory is the in-memory budget handed to multipart parsing;
	// larger parts spill to temporary files.
	MaxUploadMemory = 32 << 20 // 32 MiB

	// MaxImageDimension caps the longest side of a stored image in pixels.
	MaxImageDimension = 1920

	// ImageQuality is the fixed re-encode quality for lossy formats.
	ImageQuality = 80

	// UploadPublicPrefix is the URL prefix under which local files are served.
	UploadPublicPrefix = "/uploads/"

	// ObjectStoragePrefix is the key prefix for the S3-compatible driver.
	ObjectStoragePrefix = "documents/"
)

// # Content Cardinality

const (
	// MaxGraphImagesPerDimension bounds graph images on each sustainability dimension.
	MaxGraphImagesPerDimension = 2

	// MaxSignificantAspects bounds the "significant aspect" strings per dimension.
	MaxSignificantAspects = 3
)

// # HTTP Header Names

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixPublishedList = "content:published:"
)
