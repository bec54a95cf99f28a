package middlewares_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"threadgems/internal/middlewares"
	"threadgems/internal/testutil"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppContextMiddlewareBuildsRequestContext(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodGet, "/api/v1/health")

	var got *middlewares.AppContext
	handler := middleware.RequestID(middlewares.AppContextMiddleware(tc.AppContext)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middlewares.GetAppContext(r)
		got.Logger.Info("handled")
	})))

	handler.ServeHTTP(tc.Response, tc.Request)

	require.NotNil(t, got)
	assert.NotSame(t, tc.AppContext, got, "each request gets its own context")
	assert.Same(t, tc.AppContext.Config, got.Config)
	assert.Nil(t, got.Credentials)

	tc.AssertLogContains(t, slog.LevelInfo, "handled")
	entry := tc.LogHandler.GetRecords()[0]
	assert.NotEmpty(t, entry.Attrs["request_id"])
	assert.NotEmpty(t, entry.Attrs["client_ip"])
}

func TestHandlerFuncWithoutAppContext(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodGet, "/api/v1/health")
	called := false

	tc.AppContext.HandlerFunc(func(*middlewares.AppContext) { called = true }).ServeHTTP(tc.Response, tc.Request)

	assert.False(t, called)
	tc.AssertStatus(t, http.StatusInternalServerError)
}

func TestGetLoggerWithoutAppContext(t *testing.T) {
	assert.Nil(t, middlewares.GetLogger(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestSetJSONError(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodGet, "/api/threads")

	tc.AppContext.SetJSONError(http.StatusBadRequest, "Unknown dataset")

	tc.AssertStatus(t, http.StatusBadRequest)
	tc.AssertContentType(t, "application/json")
	tc.AssertJSONString(t, "error", "Unknown dataset")
}

func TestWriteRawJSON(t *testing.T) {
	tc := testutil.NewTestContext(t, http.MethodGet, "/api/threads")

	tc.AppContext.WriteRawJSON(http.StatusOK, []byte(`[{"id":"1"}]`))

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONArrayLength(t, 1)
}
