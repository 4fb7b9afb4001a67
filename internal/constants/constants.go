package constants

// Session and context keys
const (
	SessionCookieName = "taskflow_session"
	ContextKeyUserID  = "user_id"
	SessionKeyUserID  = "user_id"
)

// Flash message categories
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Form limits
const (
	MinUsernameLength = 2
	MaxUsernameLength = 20
)

// NoAssigneeSentinel is the form value meaning "no assignee".
// It is translated to a NULL assignee reference before persistence.
const NoAssigneeSentinel uint64 = 0
