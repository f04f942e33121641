package constant

import "time"

// Roles carried in the access token.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

// Query string and path parameters.
const (
	RequestParamID           = "id"
	RequestParamPage         = "page"
	RequestParamLimit        = "limit"
	RequestParamSortBy       = "sort_by"
	RequestParamSortDir      = "sort_dir"
	RequestParamMonth        = "month"
	RequestParamInstructorID = "instructor_id"
	RequestParamType         = "type"
	RequestParamStatus       = "status"
)

// Multipart uploads.
const (
	FormFile         = "file"
	RequestMaxMemory = 10 << 20
)

// Listing defaults when the client sends no paging.
const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

// Audit columns every mutable table carries.
const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// Postgres error codes mapped to client errors.
const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

// CacheKeyRevokedToken prefixes the ids of tokens revoked by logout.
const CacheKeyRevokedToken = "auth:revoked"

const (
	DateFormat      = time.RFC3339
	DateOnlyFormat  = time.DateOnly
	MonthFormat     = "2006-01"
	ClockTimeFormat = "15:04"

	MinutesToSeconds = 60
)

// Tracer names and span attribute keys.
const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelS3ScopeName         = "s3"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderAPIKey        = "X-API-Key"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderUserAgent     = "User-Agent"
	RequestHeaderForwardedFor  = "X-Forwarded-For"
	RequestHeaderRealIP        = "X-Real-IP"

	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"

	ContentTypeJSON = "application/json"
)

// Bodies of the responses written outside any handler.
const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const ServerEnvProduction = "production"

const (
	Asterix = "*"
	Empty   = ""
)
