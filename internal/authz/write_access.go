package authz

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/models"
)

// WriteAccess denies mutating requests for read-only accounts. Bind it to
// every command that changes vault state; queries stay unguarded by it.
type WriteAccess struct {
	requestName string
}

// NewWriteAccess binds a write-access check to one request shape.
func NewWriteAccess(requestName string) *WriteAccess {
	return &WriteAccess{requestName: requestName}
}

// RequestName implements the dispatch authorizer contract.
func (a *WriteAccess) RequestName() string { return a.requestName }

// Authorize denies callers whose token carries the read-only flag.
func (a *WriteAccess) Authorize(ctx context.Context, request dispatch.Request, identity models.Identity) (dispatch.Decision, error) {
	if identity.ReadOnly {
		return dispatch.Deny("account is read-only"), nil
	}

	return dispatch.Allow(), nil
}
