package constants

// Session and request context keys
const (
	SessionCookieName = "scrum_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRequest = "request_id"
	ContextKeyID      = "resource_id"
)

// UserIdentityField is the user attribute exposed by the API instead of the
// numeric primary key. It is used for user lookups, the assigned filter and links.
const UserIdentityField = "username"

// Pagination bounds used when the configuration does not override them
const (
	MinPageSize     = 1
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// Query parameters shared by list endpoints
const (
	QueryPage     = "page"
	QueryPageSize = "page_size"
	QuerySearch   = "search"
	QueryOrdering = "ordering"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

const (
	MinPasswordLength   = 8
	TokenKeyBytes       = 20
	MaxNameLength       = 100
	MaxAIGeneratedTasks = 20
)
