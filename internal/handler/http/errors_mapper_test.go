package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-doc-vault/internal/app"
	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/internal/jsonutil"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/models"
)

// ─────────────────────────────────────────────
// NewBoundaryClassifier — disposition table
// ─────────────────────────────────────────────

// TestBoundaryClassifier_SentinelTable verifies every row of the boundary
// disposition policy, including wrapped sentinels matched via errors.Is.
func TestBoundaryClassifier_SentinelTable(t *testing.T) {
	classifier := NewBoundaryClassifier()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not implemented → 501", dispatch.ErrNotImplemented, http.StatusNotImplemented},
		{"authentication required → 401", dispatch.ErrAuthenticationRequired, http.StatusUnauthorized},
		{"access denied → 403", dispatch.ErrAccessDenied, http.StatusForbidden},
		{"input invalid → 400", dispatch.ErrInputInvalid, http.StatusBadRequest},
		{"dependency unavailable → 503", dispatch.ErrDependencyUnavailable, http.StatusServiceUnavailable},
		{"document not found → 404", store.ErrDocumentNotFound, http.StatusNotFound},
		{"version conflict → 409", store.ErrVersionConflict, http.StatusConflict},
		{"document already exists → 409", store.ErrDocumentAlreadyExists, http.StatusConflict},
		{"storage unavailable → 503", store.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"unknown error → 500 fallback", errors.New("something odd"), http.StatusInternalServerError},
		{
			"wrapped not found still 404",
			fmt.Errorf("finding document: %w", store.ErrDocumentNotFound),
			http.StatusNotFound,
		},
		{
			"validation error unwraps to 400",
			&dispatch.ValidationError{Violations: []dispatch.Violation{{Field: "title", Reason: "must not be empty"}}},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := classifier.Classify(tt.err)

			assert.Equal(t, tt.wantStatus, outcome.Status)
			assert.False(t, outcome.Rethrow)
		})
	}
}

// TestBoundaryClassifier_RowOrderWins verifies that a failure matching two
// rows takes the earlier one: the policy is ordered, not a set.
func TestBoundaryClassifier_RowOrderWins(t *testing.T) {
	classifier := NewBoundaryClassifier()

	// Both sentinels are in the table; access denied is declared first.
	err := fmt.Errorf("%w: %w", dispatch.ErrAccessDenied, store.ErrDocumentNotFound)

	outcome := classifier.Classify(err)

	assert.Equal(t, http.StatusForbidden, outcome.Status)
}

// TestBoundaryClassifier_UnsupportedOperationRethrows verifies that an
// unregistered request shape is marked for rethrow instead of being mapped.
func TestBoundaryClassifier_UnsupportedOperationRethrows(t *testing.T) {
	classifier := NewBoundaryClassifier()

	outcome := classifier.Classify(fmt.Errorf("%w: no handler registered for request %q",
		dispatch.ErrUnsupportedOperation, "Bogus"))

	assert.True(t, outcome.Rethrow)
}

// ─────────────────────────────────────────────
// codeForStatus
// ─────────────────────────────────────────────

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, app.CodeBadRequest},
		{http.StatusUnauthorized, app.CodeUnauthorized},
		{http.StatusForbidden, app.CodeForbidden},
		{http.StatusNotFound, app.CodeNotFound},
		{http.StatusConflict, app.CodeConflict},
		{http.StatusNotImplemented, app.CodeNotImplemented},
		{http.StatusServiceUnavailable, app.CodeServiceUnavailable},
		{http.StatusInternalServerError, app.CodeInternalError},
		{http.StatusTeapot, app.CodeInternalError}, // anything unmapped is internal
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d → %s", tt.status, tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, codeForStatus(tt.status))
		})
	}
}

// ─────────────────────────────────────────────
// respondError
// ─────────────────────────────────────────────

func newRespondErrorHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(nil, nil, NewBoundaryClassifier(), nil, logger.Nop())
}

// decodeErrorBody parses the structured error body written by respondError.
func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var response models.ErrorResponse
	require.NoError(t, jsonutil.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

// TestRespondError_ClientErrorKeepsMessage verifies that 4xx responses carry
// the original failure text so callers can see what was wrong.
func TestRespondError_ClientErrorKeepsMessage(t *testing.T) {
	h := newRespondErrorHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	h.respondError(rec, req, fmt.Errorf("finding document: %w", store.ErrDocumentNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	response := decodeErrorBody(t, rec)
	assert.Equal(t, app.CodeNotFound, response.Code)
	assert.Contains(t, response.Message, "finding document")
}

// TestRespondError_ServerErrorScrubsMessage verifies that 5xx responses hide
// the failure detail behind a generic message.
func TestRespondError_ServerErrorScrubsMessage(t *testing.T) {
	h := newRespondErrorHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	h.respondError(rec, req, errors.New("pq: connection refused at 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	response := decodeErrorBody(t, rec)
	assert.Equal(t, app.CodeInternalError, response.Code)
	assert.Equal(t, app.MsgInternalServerError, response.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

// TestRespondError_ServiceUnavailableMessage verifies the dedicated 503 text.
func TestRespondError_ServiceUnavailableMessage(t *testing.T) {
	h := newRespondErrorHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	h.respondError(rec, req, fmt.Errorf("ping failed: %w", store.ErrStorageUnavailable))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	response := decodeErrorBody(t, rec)
	assert.Equal(t, app.CodeServiceUnavailable, response.Code)
	assert.Equal(t, "service temporarily unavailable", response.Message)
}

// TestRespondError_NotImplementedKeepsMessage verifies that 501 keeps the
// original text: it names a missing feature, not server internals.
func TestRespondError_NotImplementedKeepsMessage(t *testing.T) {
	h := newRespondErrorHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	h.respondError(rec, req, fmt.Errorf("%w: vault export", dispatch.ErrNotImplemented))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	response := decodeErrorBody(t, rec)
	assert.Equal(t, app.CodeNotImplemented, response.Code)
	assert.Contains(t, response.Message, "vault export")
}

// TestRespondError_ValidationViolationsListed verifies that every violation
// of a validation failure reaches the response body.
func TestRespondError_ValidationViolationsListed(t *testing.T) {
	h := newRespondErrorHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	err := &dispatch.ValidationError{Violations: []dispatch.Violation{
		{Field: "title", Reason: "must not be empty"},
		{Field: "type", Reason: "must be a known content type"},
	}}
	h.respondError(rec, req, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	response := decodeErrorBody(t, rec)
	assert.Equal(t, app.CodeBadRequest, response.Code)
	require.Len(t, response.Violations, 2)
	assert.Equal(t, "title", response.Violations[0].Field)
	assert.Equal(t, "must not be empty", response.Violations[0].Reason)
	assert.Equal(t, "type", response.Violations[1].Field)
}

// TestRespondError_RethrowPanics verifies that a rethrow outcome leaves the
// response untouched and re-raises the original failure for the router's
// recovery middleware.
func TestRespondError_RethrowPanics(t *testing.T) {
	h := newRespondErrorHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	err := fmt.Errorf("%w: no handler registered for request %q", dispatch.ErrUnsupportedOperation, "Bogus")

	require.PanicsWithError(t, err.Error(), func() {
		h.respondError(rec, req, err)
	})

	// Nothing may be written before the panic: the recovery layer owns the
	// response entirely.
	assert.Zero(t, rec.Body.Len())
}
