package middlewares

import (
	"net/http"
	"threadgems/internal/authflow"
)

//go:generate mockgen -source=flow_provider.go -destination=../mocks/flow.go -package=mocks

// FlowProvider builds the login flow for the browser behind a request.
type FlowProvider interface {
	Manager(ctx *AppContext) *authflow.Manager
	// Client calls the backend API with the browser's credentials.
	Client(ctx *AppContext) *http.Client
	BackendURL() string
	// Renew rotates the durable cookie token once a login completes.
	Renew(ctx *AppContext) error

	LoadAndSave(next http.Handler) http.Handler
}
