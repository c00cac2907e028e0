package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/app"
	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

// NewBoundaryClassifier assembles the disposition policy for the document
// API. Row order is the policy: a failure wrapping several sentinels takes
// the earliest row, so pipeline outcomes are declared before domain rows
// and the fallback seals the table.
//
// Unsupported operations are rethrown, not mapped: an unregistered request
// shape is a wiring fault, and the router's recoverer owns faults.
func NewBoundaryClassifier() *dispatch.Classifier {
	return dispatch.NewClassifier().
		Map(dispatch.ErrNotImplemented, http.StatusNotImplemented).
		Map(dispatch.ErrAuthenticationRequired, http.StatusUnauthorized).
		Map(dispatch.ErrAccessDenied, http.StatusForbidden).
		Map(dispatch.ErrInputInvalid, http.StatusBadRequest).
		Rethrow(dispatch.ErrUnsupportedOperation).
		Map(dispatch.ErrDependencyUnavailable, http.StatusServiceUnavailable).
		Map(store.ErrDocumentNotFound, http.StatusNotFound).
		Map(store.ErrVersionConflict, http.StatusConflict).
		Map(store.ErrDocumentAlreadyExists, http.StatusConflict).
		Map(store.ErrStorageUnavailable, http.StatusServiceUnavailable).
		Fallback(http.StatusInternalServerError)
}

// codeForStatus translates an HTTP status into the stable error-code
// taxonomy clients branch on.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return app.CodeBadRequest
	case http.StatusUnauthorized:
		return app.CodeUnauthorized
	case http.StatusForbidden:
		return app.CodeForbidden
	case http.StatusNotFound:
		return app.CodeNotFound
	case http.StatusConflict:
		return app.CodeConflict
	case http.StatusNotImplemented:
		return app.CodeNotImplemented
	case http.StatusServiceUnavailable:
		return app.CodeServiceUnavailable
	default:
		return app.CodeInternalError
	}
}

// respondError translates a pipeline failure into the structured error
// response. A Rethrow outcome re-raises the original failure by panicking:
// the failure leaves the client-response path entirely and the router's
// recoverer (the platform fault path) owns it.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	outcome := h.classifier.Classify(err)
	if outcome.Rethrow {
		panic(err)
	}

	response := models.ErrorResponse{
		Code:    codeForStatus(outcome.Status),
		Message: err.Error(),
	}

	// Server-side failure details belong in the log, not the body. 501 keeps
	// the original text: "not implemented" names a feature, not an internals
	// leak.
	switch {
	case outcome.Status == http.StatusServiceUnavailable:
		response.Message = "service temporarily unavailable"
	case outcome.Status >= http.StatusInternalServerError && outcome.Status != http.StatusNotImplemented:
		response.Message = app.MsgInternalServerError
	}

	if outcome.Status >= http.StatusInternalServerError {
		log.Err(err).Int("status", outcome.Status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", outcome.Status).Msg("request rejected")
	}

	var validationErr *dispatch.ValidationError
	if errors.As(err, &validationErr) {
		response.Violations = make([]models.ViolationResponse, 0, len(validationErr.Violations))
		for _, v := range validationErr.Violations {
			response.Violations = append(response.Violations, models.ViolationResponse{
				Field:  v.Field,
				Reason: v.Reason,
			})
		}
	}

	utils.WriteJSON(w, response, outcome.Status)
}
