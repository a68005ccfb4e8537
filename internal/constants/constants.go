package constants

// Session
const (
	SessionCookieName = "crm_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRole    = "user_role"
)

// Passwords
const (
	MinPasswordLength = 8
	BcryptCost        = 10
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
