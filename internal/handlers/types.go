package handlers

import (
	"threadgems/internal/models"
	"time"
)

type AuthCallbackRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

type AuthCallbackResponse struct {
	Success  bool   `json:"success"`
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message"`
}

type VerifyResponse struct {
	Valid       bool   `json:"valid"`
	UserID      string `json:"user_id,omitempty"`
	Username    string `json:"username,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

type RefreshResponse struct {
	Success  bool   `json:"success"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ProfileThreadsResponse struct {
	Username string          `json:"username"`
	Count    int             `json:"count"`
	Data     []models.Thread `json:"data"`
}

type HealthResponse struct {
	Status           string    `json:"status"`
	Version          string    `json:"version"`
	Timestamp        time.Time `json:"timestamp"`
	StorageConnected bool      `json:"storage_connected"`
}

// CallbackErrorResponse is what the shell shows when a login cannot complete.
type CallbackErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	RetryURL string `json:"retry_url"`
}

type AuthStatusResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *models.Identity `json:"user,omitempty"`
}
