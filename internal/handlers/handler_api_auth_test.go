package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"threadgems/internal/storage"
	"threadgems/internal/testutil"
	"threadgems/internal/threads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthVerifyHandler_Session(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodGet, "/api/auth/verify")

	tc.MockSession.EXPECT().IsSessionValid(tc.AppContext).Return(true)
	tc.ExpectSession(testTokenSession(), true)
	tc.MockThreads.EXPECT().Me(gomock.Any(), "long-lived-token").
		Return(&threads.Profile{ID: "42", Username: "jane.doe"}, nil)

	tc.CallHandler(AuthVerifyHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONBool(t, "valid", true)
	tc.AssertJSONString(t, "user_id", "42")
	tc.AssertJSONString(t, "username", "jane.doe")
	tc.AssertJSONString(t, "access_token", "long-lived-token")
}

func TestAuthVerifyHandler_Bearer(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodGet, "/api/auth/verify").
		WithHeader("Authorization", "Bearer bearer-token")

	tc.MockSession.EXPECT().IsSessionValid(tc.AppContext).Return(false)
	tc.MockThreads.EXPECT().Me(gomock.Any(), "bearer-token").
		Return(&threads.Profile{ID: "7", Username: "sam"}, nil).Times(1)

	tc.CallHandler(AuthVerifyHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONString(t, "user_id", "7")
	tc.AssertJSONString(t, "access_token", "bearer-token")

	records := tc.LogHandler.GetRecordsByLevel(slog.LevelDebug)
	require.Len(t, records, 1)
	assert.Equal(t, "token verified", records[0].Message)
	assert.Equal(t, "bear****oken", records[0].Attrs["token"])
	for _, record := range tc.LogHandler.GetRecords() {
		for _, v := range record.Attrs {
			assert.NotEqual(t, "bearer-token", v, "raw token must not reach the logs")
		}
	}
}

func TestAuthVerifyHandler_NoCredentials(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodPost, "/api/auth/verify")

	tc.MockSession.EXPECT().IsSessionValid(tc.AppContext).Return(false)

	tc.CallHandler(AuthVerifyHandler)

	tc.AssertStatus(t, http.StatusUnauthorized)
	tc.AssertJSONBool(t, "valid", false)
}

func TestAuthVerifyHandler_RevokedSessionToken(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodGet, "/api/auth/verify")

	tc.MockSession.EXPECT().IsSessionValid(tc.AppContext).Return(true)
	tc.ExpectSession(testTokenSession(), true)
	tc.MockThreads.EXPECT().Me(gomock.Any(), "long-lived-token").
		Return(nil, &threads.APIError{StatusCode: http.StatusUnauthorized, Message: "Session has expired"})

	tc.CallHandler(AuthVerifyHandler)

	tc.AssertStatus(t, http.StatusUnauthorized)
	tc.AssertJSONBool(t, "valid", false)
}

func TestPOSTAuthRefreshHandler_NoSession(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodPost, "/api/auth/refresh")

	tc.ExpectSession(nil, false)

	tc.CallHandler(POSTAuthRefreshHandler)

	tc.AssertStatus(t, http.StatusUnauthorized)
}

func TestPOSTAuthRefreshHandler_UpstreamFailure(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodPost, "/api/auth/refresh")

	tc.ExpectSession(testTokenSession(), true)
	tc.MockThreads.EXPECT().Refresh(gomock.Any(), "long-lived-token").Return(nil, errors.New("connection reset"))

	tc.CallHandler(POSTAuthRefreshHandler)

	tc.AssertStatus(t, http.StatusBadGateway)
}

func TestPOSTAuthRefreshHandler_Success(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodPost, "/api/auth/refresh").WithStorage()

	tc.ExpectSession(testTokenSession(), true)
	tc.MockThreads.EXPECT().Refresh(gomock.Any(), "long-lived-token").
		Return(&threads.LongLivedToken{AccessToken: "refreshed", ExpiresIn: 5183944}, nil)
	tc.MockSession.EXPECT().UpdateToken(tc.AppContext, "refreshed", gomock.Any())
	tc.MockStorage.EXPECT().UpdateUserToken(gomock.Any(), "42", "refreshed", gomock.Any()).Return(storage.ErrUserNotFound)

	tc.CallHandler(POSTAuthRefreshHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONBool(t, "success", true)
	tc.AssertJSONString(t, "user_id", "42")
	tc.AssertJSONString(t, "username", "jane")
	tc.AssertLogCount(t, slog.LevelWarn, 0)
}

func TestPOSTAuthLogoutHandler(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodPost, "/api/auth/logout")

	tc.ExpectSession(testTokenSession(), true)
	tc.MockSession.EXPECT().Logout(tc.AppContext).Return(nil)

	tc.CallHandler(POSTAuthLogoutHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONBool(t, "success", true)
	tc.AssertJSONString(t, "message", "Logged out successfully")
}

func TestPOSTAuthLogoutHandler_WithoutSession(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodPost, "/api/auth/logout")

	tc.ExpectSession(nil, false)
	tc.MockSession.EXPECT().Logout(tc.AppContext).Return(nil)

	tc.CallHandler(POSTAuthLogoutHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONBool(t, "success", true)
}

func TestPOSTAuthLogoutHandler_StoreFailure(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodPost, "/api/auth/logout")

	tc.ExpectSession(nil, false)
	tc.MockSession.EXPECT().Logout(tc.AppContext).Return(errors.New("redis down"))

	tc.CallHandler(POSTAuthLogoutHandler)

	tc.AssertStatus(t, http.StatusInternalServerError)
}

func TestGETAuthUserHandler(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodGet, "/api/auth/user")

	tc.MockSession.EXPECT().IsSessionValid(tc.AppContext).Return(true)
	tc.ExpectSession(testTokenSession(), true)
	tc.MockThreads.EXPECT().Me(gomock.Any(), "long-lived-token").
		Return(&threads.Profile{ID: "42", Username: "jane", Biography: "designer"}, nil)

	tc.CallHandler(GETAuthUserHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONString(t, "id", "42")
	tc.AssertJSONString(t, "threads_biography", "designer")
}

func TestGETAuthUserHandler_NotAuthenticated(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodGet, "/api/auth/user")

	tc.MockSession.EXPECT().IsSessionValid(tc.AppContext).Return(false)

	tc.CallHandler(GETAuthUserHandler)

	tc.AssertStatus(t, http.StatusUnauthorized)
}
