package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"threadgems/internal/models"
	"threadgems/internal/testutil"
	"threadgems/internal/threads"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func testTokenSession() *models.TokenSession {
	return &models.TokenSession{
		UserID:      "42",
		Username:    "jane",
		AccessToken: "long-lived-token",
		ExpiresAt:   time.Now().Add(60 * 24 * time.Hour),
		CreatedAt:   time.Now(),
	}
}

func TestPOSTAuthCallbackHandler_Success(t *testing.T) {
	tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/callback",
		[]byte(`{"code":"code-1","redirect_uri":"https://gems.example.com/auth/callback"}`))

	session := testTokenSession()
	tc.MockThreads.EXPECT().
		ExchangeCode(gomock.Any(), "code-1", "https://gems.example.com/auth/callback").
		Return(session, &threads.Profile{ID: "42", Username: "jane"}, nil)
	tc.MockSession.EXPECT().CreateSession(tc.AppContext, session).Return(nil)

	tc.CallHandler(POSTAuthCallbackHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONBool(t, "success", true)
	tc.AssertJSONString(t, "user_id", "42")
	tc.AssertJSONString(t, "username", "jane")
	tc.AssertJSONString(t, "message", "Authentication successful")
	tc.AssertLogContains(t, slog.LevelInfo, "user authenticated")
}

func TestPOSTAuthCallbackHandler_DefaultsRedirectURI(t *testing.T) {
	tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/callback", []byte(`{"code":"code-1"}`))
	tc.AppContext.Config.Threads.RedirectURI = "https://configured.example.com/auth/callback"

	session := testTokenSession()
	tc.MockThreads.EXPECT().
		ExchangeCode(gomock.Any(), "code-1", "https://configured.example.com/auth/callback").
		Return(session, nil, nil)
	tc.MockSession.EXPECT().CreateSession(tc.AppContext, session).Return(nil)

	tc.CallHandler(POSTAuthCallbackHandler)

	tc.AssertStatus(t, http.StatusOK)
}

func TestPOSTAuthCallbackHandler_StoresUser(t *testing.T) {
	tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/callback", []byte(`{"code":"code-1"}`)).WithStorage()

	session := testTokenSession()
	tc.MockThreads.EXPECT().ExchangeCode(gomock.Any(), "code-1", gomock.Any()).
		Return(session, &threads.Profile{ID: "42", Username: "jane", Name: "Jane"}, nil)
	tc.MockStorage.EXPECT().UpsertUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.StoredUser) (*models.StoredUser, error) {
			assert.Equal(t, "42", user.UserID)
			assert.Equal(t, "jane", user.Username)
			assert.Equal(t, "long-lived-token", user.AccessToken)
			assert.Contains(t, string(user.Profile), `"name":"Jane"`)
			return user, nil
		})
	tc.MockSession.EXPECT().CreateSession(tc.AppContext, session).Return(nil)

	tc.CallHandler(POSTAuthCallbackHandler)

	tc.AssertStatus(t, http.StatusOK)
}

func TestPOSTAuthCallbackHandler_StorageFailureDoesNotBlockLogin(t *testing.T) {
	tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/callback", []byte(`{"code":"code-1"}`)).WithStorage()

	session := testTokenSession()
	tc.MockThreads.EXPECT().ExchangeCode(gomock.Any(), "code-1", gomock.Any()).Return(session, nil, nil)
	tc.MockStorage.EXPECT().UpsertUser(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))
	tc.MockSession.EXPECT().CreateSession(tc.AppContext, session).Return(nil)

	tc.CallHandler(POSTAuthCallbackHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertLogContains(t, slog.LevelWarn, "failed to store user")
}

func TestPOSTAuthCallbackHandler_MalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"not json":     `code=abc`,
		"missing code": `{"redirect_uri":"https://gems.example.com/auth/callback"}`,
	} {
		t.Run(name, func(t *testing.T) {
			tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/callback", []byte(body))

			tc.CallHandler(POSTAuthCallbackHandler)

			tc.AssertStatus(t, http.StatusBadRequest)
			tc.AssertContentType(t, "application/json")
		})
	}
}

func TestPOSTAuthCallbackHandler_ExchangeFailure(t *testing.T) {
	tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/callback", []byte(`{"code":"expired"}`))

	tc.MockThreads.EXPECT().ExchangeCode(gomock.Any(), "expired", gomock.Any()).
		Return(nil, nil, &threads.APIError{StatusCode: http.StatusBadRequest, Message: "code has expired"})

	tc.CallHandler(POSTAuthCallbackHandler)

	tc.AssertStatus(t, http.StatusBadRequest)
	tc.AssertJSONString(t, "error", "Failed to exchange authorization code")
	tc.AssertLogContains(t, slog.LevelError, "failed to exchange authorization code")
}

func TestPOSTAuthCallbackHandler_SessionFailure(t *testing.T) {
	tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/callback", []byte(`{"code":"code-1"}`))

	session := testTokenSession()
	tc.MockThreads.EXPECT().ExchangeCode(gomock.Any(), "code-1", gomock.Any()).Return(session, nil, nil)
	tc.MockSession.EXPECT().CreateSession(tc.AppContext, session).Return(errors.New("store unavailable"))

	tc.CallHandler(POSTAuthCallbackHandler)

	tc.AssertStatus(t, http.StatusInternalServerError)
	tc.AssertJSONString(t, "error", "Failed to create session")
}
