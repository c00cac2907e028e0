package authz

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/models"
)

// DocumentOwnerResolver reports the owning account of a stored document.
// The store's document repository implements it; errors it returns (not
// found, storage outage) propagate through the authorization stage
// unchanged so the boundary can classify them.
type DocumentOwnerResolver interface {
	ResolveDocumentOwner(ctx context.Context, documentID string) (int64, error)
}

// DocumentOwner denies document-scoped requests whose target belongs to a
// different account. Unlike [Ownership], which checks the owner the request
// declares, this check resolves the owner recorded in storage, so a caller
// cannot reach a foreign document by addressing it with their own owner ID.
type DocumentOwner struct {
	requestName string
	owners      DocumentOwnerResolver
}

// NewDocumentOwner binds a stored-owner check to one request shape.
func NewDocumentOwner(requestName string, owners DocumentOwnerResolver) *DocumentOwner {
	return &DocumentOwner{requestName: requestName, owners: owners}
}

// RequestName implements the dispatch authorizer contract.
func (a *DocumentOwner) RequestName() string { return a.requestName }

// Authorize resolves the stored owner of the target document and allows the
// request only when it is the caller.
func (a *DocumentOwner) Authorize(ctx context.Context, request dispatch.Request, identity models.Identity) (dispatch.Decision, error) {
	targeted, ok := request.(targetedRequest)
	if !ok {
		return dispatch.Decision{}, fmt.Errorf("request %q targets no document", request.Name())
	}

	ownerID, err := a.owners.ResolveDocumentOwner(ctx, targeted.TargetID())
	if err != nil {
		return dispatch.Decision{}, err
	}

	if ownerID != identity.UserID {
		return dispatch.Deny("document belongs to another vault"), nil
	}

	return dispatch.Allow(), nil
}
