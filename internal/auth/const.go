package auth

type SessionKey string

const (
	SessionKeyTokenSession SessionKey = "token_session"
)

const redisSessionPrefix = "threadgems:session:"
