package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The routing tests reuse the boundary fixture from documents_test.go: a
// real route table around a real pipeline with every handler registered.

func validAuthHeader() string { return "Bearer stub-token" }

// ---- Public routes: reachable without auth ----

func TestInit_PublicRoutes(t *testing.T) {
	f := newBoundaryFixture(t)
	router := f.build(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/user/register"},
		{http.MethodPost, "/api/user/login"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/version"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.NotEqual(t, http.StatusNotFound, rr.Code,
				"route should be registered: %s %s", tt.method, tt.path)
			assert.NotEqual(t, http.StatusUnauthorized, rr.Code,
				"public route must not require a token: %s %s", tt.method, tt.path)
		})
	}
}

// ---- Protected routes: 401 without token ----

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	f := newBoundaryFixture(t)
	router := f.build(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/documents"},
		{http.MethodGet, "/api/documents"},
		{http.MethodGet, "/api/documents/" + knownDocumentID},
		{http.MethodPut, "/api/documents/" + knownDocumentID},
		{http.MethodDelete, "/api/documents/" + knownDocumentID},
		{http.MethodPost, "/api/documents/" + knownDocumentID + "/reindex"},
		{http.MethodPost, "/api/documents/export"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" without token → 401", func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code,
				"missing token should result in 401")
		})
	}
}

// ---- Protected routes: pass with valid token ----

func TestInit_ProtectedRoutes_PassWithValidToken(t *testing.T) {
	f := newBoundaryFixture(t)
	router := f.build(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/documents"},
		{http.MethodGet, "/api/documents/" + knownDocumentID},
		{http.MethodDelete, "/api/documents/" + knownDocumentID},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" with token → not 401", func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", validAuthHeader())
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.NotEqual(t, http.StatusUnauthorized, rr.Code,
				"valid token should not result in 401")
		})
	}
}

// ---- Static route wins over the {id} wildcard ----

func TestInit_ExportIsNotTreatedAsDocumentID(t *testing.T) {
	f := newBoundaryFixture(t)
	router := f.build(t)

	req := httptest.NewRequest(http.MethodPost, "/api/documents/export", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	// A wildcard match would dispatch GetDocument and fail validation on the
	// id "export"; the static route must win instead.
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

// ---- Unknown routes return 404 ----

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	f := newBoundaryFixture(t)
	router := f.build(t)

	tests := []struct {
		method  string
		path    string
		addAuth bool // некоторые пути защищены auth — нужен токен чтобы дойти до 404
	}{
		{http.MethodGet, "/api/nonexistent", false},
		{http.MethodGet, "/totally/wrong", false},
		{http.MethodPatch, "/api/user/register", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.addAuth {
				req.Header.Set("Authorization", validAuthHeader())
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

// ---- Wrong method on existing route returns 404 (CheckHTTPMethod) ----

func TestInit_WrongMethod_Returns404NotMethodNotAllowed(t *testing.T) {
	f := newBoundaryFixture(t)
	router := f.build(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{
			name:   "GET on /api/user/register (POST only)",
			method: http.MethodGet,
			path:   "/api/user/register",
		},
		{
			name:   "GET on /api/user/login (POST only)",
			method: http.MethodGet,
			path:   "/api/user/login",
		},
		{
			name:   "POST on /version (GET only)",
			method: http.MethodPost,
			path:   "/version",
		},
		{
			name:   "PATCH on /api/documents/{id} (no PATCH registered)",
			method: http.MethodPatch,
			path:   "/api/documents/" + knownDocumentID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusNotFound, rr.Code,
				"CheckHTTPMethod should replace 405 with 404")
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

// ---- X-Trace-ID is always present in the response ----

func TestInit_TraceIDHeader_AlwaysSet(t *testing.T) {
	f := newBoundaryFixture(t)
	router := f.build(t)

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get("X-Trace-ID"))
}

// ---- Incoming X-Trace-ID is echoed back ----

func TestInit_TraceIDHeader_EchoedFromRequest(t *testing.T) {
	f := newBoundaryFixture(t)
	router := f.build(t)
	const customTraceID = "my-custom-trace-id-12345"

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", nil)
	req.Header.Set("X-Trace-ID", customTraceID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, customTraceID, rr.Header().Get("X-Trace-ID"))
}
