// Package authz holds the capability checks that guard dispatched requests
// and the registry binding them to request shapes.
//
// Discovery is explicit: the composition root constructs the authorizer set
// for the deployment (ownership checks, read-only account enforcement, and
// — when enabled — relationship checks against an OpenFGA store) and hands
// it to NewRegistry. The registry is read-only after construction.
package authz

import (
	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/models"
)

// Registry maps request shapes to the authorizers bound to them. It
// implements the dispatch pipeline's authorizer source.
type Registry struct {
	byRequest map[string][]dispatch.Authorizer
}

// NewRegistry groups the given authorizers by the request shape each one
// declares. Binding order within a shape follows the argument order, which
// matters: the authorization stage stops at the first denial.
func NewRegistry(authorizers ...dispatch.Authorizer) *Registry {
	byRequest := make(map[string][]dispatch.Authorizer)
	for _, authorizer := range authorizers {
		name := authorizer.RequestName()
		byRequest[name] = append(byRequest[name], authorizer)
	}

	return &Registry{byRequest: byRequest}
}

// For returns the authorizers bound to the request shape, in binding order.
// A shape nobody guards yields nil, which the authorization stage treats as
// an open request.
func (r *Registry) For(requestName string) []dispatch.Authorizer {
	return r.byRequest[requestName]
}

// Relations a caller may hold on a document in the relation store.
const (
	RelationViewer = "viewer"
	RelationEditor = "editor"
)

// DocumentAuthorizers returns the authorizer set guarding the document
// request surface. With a nil relations checker access is owner-only:
// document-scoped requests must both declare the caller as owner and
// target a document whose stored owner is the caller. With a relations
// checker, those requests are decided by the relation store instead
// (viewer for reads, editor for mutations), so shared documents become
// reachable across accounts. Read-only account enforcement applies in
// both modes. Within a shape, cheap local checks are bound before checks
// that leave the process.
func DocumentAuthorizers(owners DocumentOwnerResolver, relations RelationChecker) []dispatch.Authorizer {
	authorizers := []dispatch.Authorizer{
		NewOwnership(models.RequestCreateDocument),
		NewOwnership(models.RequestListDocuments),
		NewOwnership(models.RequestExportDocuments),
		NewWriteAccess(models.RequestCreateDocument),
		NewWriteAccess(models.RequestUpdateDocument),
		NewWriteAccess(models.RequestDeleteDocument),
		NewWriteAccess(models.RequestReindexDocument),
	}

	if relations == nil {
		return append(authorizers,
			NewOwnership(models.RequestGetDocument),
			NewOwnership(models.RequestUpdateDocument),
			NewOwnership(models.RequestDeleteDocument),
			NewOwnership(models.RequestReindexDocument),
			NewDocumentOwner(models.RequestGetDocument, owners),
			NewDocumentOwner(models.RequestUpdateDocument, owners),
			NewDocumentOwner(models.RequestDeleteDocument, owners),
			NewDocumentOwner(models.RequestReindexDocument, owners),
		)
	}

	return append(authorizers,
		NewRelationship(models.RequestGetDocument, RelationViewer, relations),
		NewRelationship(models.RequestUpdateDocument, RelationEditor, relations),
		NewRelationship(models.RequestDeleteDocument, RelationEditor, relations),
		NewRelationship(models.RequestReindexDocument, RelationEditor, relations),
	)
}
