package constants

// ContextKeyUser is the gin context key holding the authenticated user.
const ContextKeyUser = "current_user"

// Struct tags cannot reference constants, so the validator tags in the
// handlers repeat these values. The handler boundary tests assert both
// sides against the constants to keep them in sync.
const (
	MinPasswordLength    = 6
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)
