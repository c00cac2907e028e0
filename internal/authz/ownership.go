package authz

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/models"
)

// ownedRequest is satisfied by every request that acts on behalf of a user.
type ownedRequest interface {
	Owner() int64
}

// Ownership denies requests whose declared owner differs from the
// authenticated caller. The HTTP boundary fills the owner from the verified
// token, so a mismatch means a spoofed payload or an internal caller
// reaching across vaults.
type Ownership struct {
	requestName string
}

// NewOwnership binds an ownership check to one request shape.
func NewOwnership(requestName string) *Ownership {
	return &Ownership{requestName: requestName}
}

// RequestName implements the dispatch authorizer contract.
func (a *Ownership) RequestName() string { return a.requestName }

// Authorize allows the request only when its owner is the caller.
func (a *Ownership) Authorize(ctx context.Context, request dispatch.Request, identity models.Identity) (dispatch.Decision, error) {
	owned, ok := request.(ownedRequest)
	if !ok {
		return dispatch.Decision{}, fmt.Errorf("request %q declares no owner", request.Name())
	}

	if owned.Owner() != identity.UserID {
		return dispatch.Deny(fmt.Sprintf("request owner %d is not the caller", owned.Owner())), nil
	}

	return dispatch.Allow(), nil
}
