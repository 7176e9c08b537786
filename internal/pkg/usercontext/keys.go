package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey          = "authenticated"
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyRole          = "role"
	KeySignedInAt    = "signed_in_at"
	KeyFromProtected = "from_protected"
	KeyRecovery      = "recovery_token"
	LocalsKey        = "USER_CONTEXT"
)
