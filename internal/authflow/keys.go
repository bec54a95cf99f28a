package authflow

// Keys in the durable store.
const (
	KeyUserID   = "threads_user_id"
	KeyUsername = "threads_username"
)

// Keys in the session-scoped store.
const (
	KeyOAuthState = "threads_oauth_state"
)

const DefaultScope = "threads_basic"
