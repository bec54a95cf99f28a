package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"threadgems/internal/config"
	"threadgems/internal/data"
	"threadgems/internal/middlewares"
	"threadgems/internal/mocks"
	"threadgems/internal/models"
	"threadgems/internal/storage"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

// TestContext holds everything needed for testing
type TestContext struct {
	AppContext     *middlewares.AppContext
	Request        *http.Request
	Response       *httptest.ResponseRecorder
	MockController *gomock.Controller
	MockCache      *mocks.MockCacheProvider
	MockSession    *mocks.MockSessionProvider
	MockThreads    *mocks.MockThreadsProvider
	MockFlows      *mocks.MockFlowProvider
	MockStorage    *mocks.MockStorageProvider
	LogHandler     *TestLogHandler
}

// TestConfig returns a config with the defaults a running server would load.
func TestConfig() *config.Config {
	return &config.Config{
		Server:   config.DefaultServerConfig,
		Threads:  config.DefaultThreadsConfig,
		Frontend: config.DefaultFrontendConfig,
		Log:      config.DefaultLogConfig,
		CORS:     config.DefaultCORSConfig,
		Sessions: config.DefaultSessionConfig,
		Feed:     config.DefaultFeedConfig,
	}
}

// NewTestContext creates a complete test setup with a request for method and url.
func NewTestContext(t *testing.T, method, url string) *TestContext {
	return NewTestContextWithBody(t, method, url, nil)
}

func NewTestContextWithBody(t *testing.T, method, url string, body []byte) *TestContext {
	t.Helper()

	logHandler := NewTestLogHandler()
	logger := slog.New(logHandler)

	ctrl := gomock.NewController(t)

	mockCache := mocks.NewMockCacheProvider(ctrl)
	mockSession := mocks.NewMockSessionProvider(ctrl)
	mockThreads := mocks.NewMockThreadsProvider(ctrl)
	mockFlows := mocks.NewMockFlowProvider(ctrl)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	rr := httptest.NewRecorder()

	appCtx := &middlewares.AppContext{
		Context:         req.Context(),
		Config:          TestConfig(),
		Logger:          logger,
		SessionManager:  mockSession,
		ThreadsProvider: mockThreads,
		Flows:           mockFlows,
		Cache:           mockCache,
		Request:         req,
		Response:        rr,
	}

	return &TestContext{
		AppContext:     appCtx,
		Request:        req,
		Response:       rr,
		MockController: ctrl,
		MockCache:      mockCache,
		MockSession:    mockSession,
		MockThreads:    mockThreads,
		MockFlows:      mockFlows,
		LogHandler:     logHandler,
	}
}

// NewTestContextWithRealCache creates a test context backed by a real MemCache.
func NewTestContextWithRealCache(t *testing.T, method, url string) *TestContext {
	tc := NewTestContext(t, method, url)
	tc.AppContext.Cache = data.NewMemCache(slog.New(tc.LogHandler))
	tc.MockCache = nil
	return tc
}

// WithStorage attaches a mock StorageProvider to the context.
func (tc *TestContext) WithStorage() *TestContext {
	tc.MockStorage = mocks.NewMockStorageProvider(tc.MockController)
	tc.AppContext.Storage = tc.MockStorage
	return tc
}

func (tc *TestContext) WithRealStorage(provider storage.StorageProvider) *TestContext {
	tc.AppContext.Storage = provider
	tc.MockStorage = nil
	return tc
}

// WithConfig allows you to override the default config for specific tests
func (tc *TestContext) WithConfig(cfg *config.Config) *TestContext {
	tc.AppContext.Config = cfg
	return tc
}

func (tc *TestContext) WithCache(cache data.CacheProvider) *TestContext {
	tc.AppContext.Cache = cache
	return tc
}

// WithRequest allows you to set a custom request
func (tc *TestContext) WithRequest(req *http.Request) *TestContext {
	tc.Request = req
	tc.AppContext.Request = req
	tc.AppContext.Context = req.Context()
	return tc
}

// WithURLParam sets a chi route parameter as the router would.
func (tc *TestContext) WithURLParam(key, value string) *TestContext {
	rctx := chi.RouteContext(tc.Request.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return tc.WithRequest(tc.Request.WithContext(context.WithValue(tc.Request.Context(), chi.RouteCtxKey, rctx)))
}

func (tc *TestContext) WithQueryParam(key, value string) *TestContext {
	q := tc.Request.URL.Query()
	q.Add(key, value)
	tc.Request.URL.RawQuery = q.Encode()
	return tc
}

func (tc *TestContext) WithHeader(key, value string) *TestContext {
	tc.Request.Header.Set(key, value)
	return tc
}

func (tc *TestContext) WithCookie(cookie *http.Cookie) *TestContext {
	tc.Request.AddCookie(cookie)
	return tc
}

// WithCredentials marks the request as authenticated the way RequireAuth does.
func (tc *TestContext) WithCredentials(creds *middlewares.Credentials) *TestContext {
	tc.AppContext.Credentials = creds
	return tc
}

// CallHandler executes a handler with the test context
func (tc *TestContext) CallHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

// ExpectSession sets up an expectation for session.GetSession()
func (tc *TestContext) ExpectSession(session *models.TokenSession, ok bool) *gomock.Call {
	return tc.MockSession.EXPECT().GetSession(tc.AppContext).Return(session, ok)
}

// ExpectCacheGet sets up an expectation for cache.Get()
func (tc *TestContext) ExpectCacheGet(name string, entry data.CachedData, found bool) *gomock.Call {
	return tc.MockCache.EXPECT().Get(gomock.Any(), name).Return(entry, found)
}

// CachedJSON encodes v as a cache entry that has not expired.
func (tc *TestContext) CachedJSON(t *testing.T, name string, v any, count int) data.CachedData {
	t.Helper()

	now := time.Now()
	entry, err := data.NewEntry(name, v, count, now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Could not build cache entry: %v", err)
	}
	return entry
}

func (tc *TestContext) AssertLogContains(t *testing.T, level slog.Level, message string) {
	t.Helper()
	if !tc.LogHandler.ContainsMessage(level, message) {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
	}
}

func (tc *TestContext) AssertLogCount(t *testing.T, level slog.Level, expectedCount int) {
	t.Helper()
	count := tc.LogHandler.CountByLevel(level)
	if count != expectedCount {
		t.Errorf("Expected %d log entries at level %v, got %d", expectedCount, level, count)
	}
}

// AssertStatus checks the HTTP status code
func (tc *TestContext) AssertStatus(t *testing.T, expectedStatus int) {
	t.Helper()
	if tc.Response.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d (body: %s)", expectedStatus, tc.Response.Code, tc.Response.Body.String())
	}
}

// AssertContentType checks the content type header
func (tc *TestContext) AssertContentType(t *testing.T, expectedType string) {
	t.Helper()
	if ct := tc.Response.Header().Get("Content-Type"); ct != expectedType {
		t.Errorf("Expected content type %s, got %s", expectedType, ct)
	}
}

func (tc *TestContext) AssertLocationHeader(t *testing.T, expected string) {
	t.Helper()
	if location := tc.Response.Header().Get("Location"); location != expected {
		t.Errorf("Expected Location %q, got %q", expected, location)
	}
}

// GetJSONResponse parses the response body as JSON
func (tc *TestContext) GetJSONResponse(t *testing.T) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse JSON response: %v", err)
	}
	return response
}

// GetJSONResponseArray parses the response body as a JSON array
func (tc *TestContext) GetJSONResponseArray(t *testing.T) []any {
	t.Helper()
	var response []any
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse JSON array response: %v", err)
	}
	return response
}

func (tc *TestContext) AssertJSONBool(t *testing.T, field string, expected bool) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualBool, ok := actual.(bool)
	if !ok {
		t.Errorf("Expected %s to be a boolean, got %T", field, actual)
		return
	}

	if actualBool != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, actualBool)
	}
}

// AssertJSONString checks a specific string field in a JSON response
func (tc *TestContext) AssertJSONString(t *testing.T, field string, expected string) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualString, ok := actual.(string)
	if !ok {
		t.Errorf("Expected %s to be a string, got %T", field, actual)
		return
	}

	if actualString != expected {
		t.Errorf("Expected %s to be %q, got %q", field, expected, actualString)
	}
}

// AssertJSONObject validates an object field with expected key-value pairs
func (tc *TestContext) AssertJSONObject(t *testing.T, field string, expectedFields map[string]any) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualObj, ok := actual.(map[string]any)
	if !ok {
		t.Errorf("Expected %s to be an object, got %T", field, actual)
		return
	}

	for key, expectedValue := range expectedFields {
		if actualValue, keyExists := actualObj[key]; !keyExists {
			t.Errorf("Expected field %s.%s to exist", field, key)
		} else if actualValue != expectedValue {
			t.Errorf("Expected %s.%s to be %v, got %v", field, key, expectedValue, actualValue)
		}
	}
}

func (tc *TestContext) AssertJSONArrayLength(t *testing.T, expected int) {
	t.Helper()
	response := tc.GetJSONResponseArray(t)
	if len(response) != expected {
		t.Errorf("Expected JSON array length %d, got %d", expected, len(response))
	}
}
