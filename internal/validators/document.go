package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/oklog/ulid/v2"
)

// Field name constants used in violation reports. They match the JSON
// field names of the request payloads so clients can point at the
// offending input directly.
const (
	// FieldOwnerID targets the owner identifier of a request.
	FieldOwnerID = "owner_id"

	// FieldDocumentID targets the document identifier of a request.
	FieldDocumentID = "document_id"

	// FieldTitle targets the document title.
	FieldTitle = "title"

	// FieldBody targets the document content.
	FieldBody = "body"

	// FieldType targets the content type field.
	FieldType = "type"

	// FieldTags targets the tag list.
	FieldTags = "tags"

	// FieldVersion targets the optimistic concurrency version field.
	FieldVersion = "version"

	// FieldUpdate targets the partial-update descriptor as a whole.
	FieldUpdate = "update"

	// FieldLimit targets the page size of a list query.
	FieldLimit = "limit"

	// FieldOffset targets the page offset of a list query.
	FieldOffset = "offset"
)

// Structural limits on document payloads.
const (
	maxTitleLength = 200
	maxBodyBytes   = 1 << 20
	maxTags        = 16
)

// allowedContentTypes is the exhaustive set of ContentType values accepted
// by the validators. Any ContentType not present here is invalid.
var allowedContentTypes = []models.ContentType{
	models.PlainText,
	models.Markdown,
	models.RichText,
	models.Attachment,
}

// isValidContentType reports whether ct is one of the recognized
// ContentType values defined in allowedContentTypes.
func isValidContentType(ct models.ContentType) bool {
	for _, t := range allowedContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// checkOwner appends a violation when the owner identifier is not a
// positive user ID.
func checkOwner(ownerID int64, violations []dispatch.Violation) []dispatch.Violation {
	if ownerID <= 0 {
		violations = append(violations, dispatch.Violation{Field: FieldOwnerID, Reason: "must be a positive user identifier"})
	}
	return violations
}

// checkDocumentID appends a violation when id is not a well-formed
// document identifier (a ULID).
func checkDocumentID(field, id string, violations []dispatch.Violation) []dispatch.Violation {
	if id == "" {
		return append(violations, dispatch.Violation{Field: field, Reason: "must not be empty"})
	}
	if _, err := ulid.Parse(id); err != nil {
		return append(violations, dispatch.Violation{Field: field, Reason: "must be a valid document identifier"})
	}
	return violations
}

// checkTags appends violations for oversized tag lists and blank tags.
func checkTags(tags []string, violations []dispatch.Violation) []dispatch.Violation {
	if len(tags) > maxTags {
		violations = append(violations, dispatch.Violation{Field: FieldTags, Reason: fmt.Sprintf("must not exceed %d tags", maxTags)})
	}
	for _, tag := range tags {
		if tag == "" {
			violations = append(violations, dispatch.Violation{Field: FieldTags, Reason: "tags must not be empty"})
			break
		}
	}
	return violations
}

// wrongShape is the single violation reported when a validator receives a
// request whose concrete type does not match the shape it is bound to.
func wrongShape(requestName string) []dispatch.Violation {
	return []dispatch.Violation{{Field: "request", Reason: fmt.Sprintf("unexpected payload for request %q", requestName)}}
}

// CreateDocumentValidator checks new-document commands: a real owner, a
// bounded non-empty title, a recognized content type, a bounded body, and
// well-formed tags.
type CreateDocumentValidator struct{}

// NewCreateDocumentValidator constructs the validator for CreateDocument.
func NewCreateDocumentValidator() *CreateDocumentValidator {
	return &CreateDocumentValidator{}
}

// RequestName implements the dispatch validator contract.
func (v *CreateDocumentValidator) RequestName() string { return models.RequestCreateDocument }

// Validate evaluates every rule and returns every violation found.
func (v *CreateDocumentValidator) Validate(ctx context.Context, request dispatch.Request) []dispatch.Violation {
	command, ok := request.(models.CreateDocumentCommand)
	if !ok {
		return wrongShape(models.RequestCreateDocument)
	}

	var violations []dispatch.Violation

	violations = checkOwner(command.OwnerID, violations)

	if command.Title == "" {
		violations = append(violations, dispatch.Violation{Field: FieldTitle, Reason: "must not be empty"})
	} else if len(command.Title) > maxTitleLength {
		violations = append(violations, dispatch.Violation{Field: FieldTitle, Reason: fmt.Sprintf("must not exceed %d characters", maxTitleLength)})
	}

	if !isValidContentType(command.Type) {
		violations = append(violations, dispatch.Violation{Field: FieldType, Reason: "unknown content type"})
	}

	if len(command.Body) > maxBodyBytes {
		violations = append(violations, dispatch.Violation{Field: FieldBody, Reason: fmt.Sprintf("must not exceed %d bytes", maxBodyBytes)})
	}

	violations = checkTags(command.Tags, violations)

	return violations
}

// GetDocumentValidator checks single-document queries.
type GetDocumentValidator struct{}

// NewGetDocumentValidator constructs the validator for GetDocument.
func NewGetDocumentValidator() *GetDocumentValidator {
	return &GetDocumentValidator{}
}

// RequestName implements the dispatch validator contract.
func (v *GetDocumentValidator) RequestName() string { return models.RequestGetDocument }

// Validate evaluates every rule and returns every violation found.
func (v *GetDocumentValidator) Validate(ctx context.Context, request dispatch.Request) []dispatch.Violation {
	query, ok := request.(models.GetDocumentQuery)
	if !ok {
		return wrongShape(models.RequestGetDocument)
	}

	var violations []dispatch.Violation
	violations = checkOwner(query.OwnerID, violations)
	violations = checkDocumentID(FieldDocumentID, query.DocumentID, violations)

	return violations
}

// ListDocumentsValidator checks list queries: owner, optional type filter,
// and paging bounds.
type ListDocumentsValidator struct{}

// NewListDocumentsValidator constructs the validator for ListDocuments.
func NewListDocumentsValidator() *ListDocumentsValidator {
	return &ListDocumentsValidator{}
}

// RequestName implements the dispatch validator contract.
func (v *ListDocumentsValidator) RequestName() string { return models.RequestListDocuments }

// Validate evaluates every rule and returns every violation found.
func (v *ListDocumentsValidator) Validate(ctx context.Context, request dispatch.Request) []dispatch.Violation {
	query, ok := request.(models.ListDocumentsQuery)
	if !ok {
		return wrongShape(models.RequestListDocuments)
	}

	var violations []dispatch.Violation

	violations = checkOwner(query.OwnerID, violations)

	// Zero means "server default": only an explicit filter is checked.
	if query.Type != 0 && !isValidContentType(query.Type) {
		violations = append(violations, dispatch.Violation{Field: FieldType, Reason: "unknown content type"})
	}

	if query.Limit < 0 || query.Limit > models.MaxPageSize {
		violations = append(violations, dispatch.Violation{Field: FieldLimit, Reason: fmt.Sprintf("must be between 0 and %d", models.MaxPageSize)})
	}

	if query.Offset < 0 {
		violations = append(violations, dispatch.Violation{Field: FieldOffset, Reason: "must not be negative"})
	}

	return violations
}

// UpdateDocumentValidator checks partial updates: a well-formed target, an
// observed version for the optimistic concurrency check, at least one field
// to change, and the same content bounds as creation.
type UpdateDocumentValidator struct{}

// NewUpdateDocumentValidator constructs the validator for UpdateDocument.
func NewUpdateDocumentValidator() *UpdateDocumentValidator {
	return &UpdateDocumentValidator{}
}

// RequestName implements the dispatch validator contract.
func (v *UpdateDocumentValidator) RequestName() string { return models.RequestUpdateDocument }

// Validate evaluates every rule and returns every violation found.
func (v *UpdateDocumentValidator) Validate(ctx context.Context, request dispatch.Request) []dispatch.Violation {
	command, ok := request.(models.UpdateDocumentCommand)
	if !ok {
		return wrongShape(models.RequestUpdateDocument)
	}

	var violations []dispatch.Violation

	violations = checkOwner(command.OwnerID, violations)
	violations = checkDocumentID(FieldDocumentID, command.Update.ID, violations)

	if command.Update.Version <= 0 {
		violations = append(violations, dispatch.Violation{Field: FieldVersion, Reason: "must carry the version last observed by the client"})
	}

	// Partial-update semantics: nil means "do not touch", so rules for a
	// field only apply when its pointer is set.
	if command.Update.Title != nil {
		if *command.Update.Title == "" {
			violations = append(violations, dispatch.Violation{Field: FieldTitle, Reason: "must not be empty"})
		} else if len(*command.Update.Title) > maxTitleLength {
			violations = append(violations, dispatch.Violation{Field: FieldTitle, Reason: fmt.Sprintf("must not exceed %d characters", maxTitleLength)})
		}
	}

	if command.Update.Body != nil && len(*command.Update.Body) > maxBodyBytes {
		violations = append(violations, dispatch.Violation{Field: FieldBody, Reason: fmt.Sprintf("must not exceed %d bytes", maxBodyBytes)})
	}

	if command.Update.Tags != nil {
		violations = checkTags(*command.Update.Tags, violations)
	}

	if command.Update.Title == nil && command.Update.Body == nil && command.Update.Tags == nil {
		violations = append(violations, dispatch.Violation{Field: FieldUpdate, Reason: "at least one field must be provided for update"})
	}

	return violations
}

// DeleteDocumentValidator checks delete commands.
type DeleteDocumentValidator struct{}

// NewDeleteDocumentValidator constructs the validator for DeleteDocument.
func NewDeleteDocumentValidator() *DeleteDocumentValidator {
	return &DeleteDocumentValidator{}
}

// RequestName implements the dispatch validator contract.
func (v *DeleteDocumentValidator) RequestName() string { return models.RequestDeleteDocument }

// Validate evaluates every rule and returns every violation found.
func (v *DeleteDocumentValidator) Validate(ctx context.Context, request dispatch.Request) []dispatch.Violation {
	command, ok := request.(models.DeleteDocumentCommand)
	if !ok {
		return wrongShape(models.RequestDeleteDocument)
	}

	var violations []dispatch.Violation
	violations = checkOwner(command.OwnerID, violations)
	violations = checkDocumentID(FieldDocumentID, command.DocumentID, violations)

	return violations
}

// ReindexDocumentValidator checks synchronous reindex commands.
type ReindexDocumentValidator struct{}

// NewReindexDocumentValidator constructs the validator for ReindexDocument.
func NewReindexDocumentValidator() *ReindexDocumentValidator {
	return &ReindexDocumentValidator{}
}

// RequestName implements the dispatch validator contract.
func (v *ReindexDocumentValidator) RequestName() string { return models.RequestReindexDocument }

// Validate evaluates every rule and returns every violation found.
func (v *ReindexDocumentValidator) Validate(ctx context.Context, request dispatch.Request) []dispatch.Violation {
	command, ok := request.(models.ReindexDocumentCommand)
	if !ok {
		return wrongShape(models.RequestReindexDocument)
	}

	var violations []dispatch.Violation
	violations = checkOwner(command.OwnerID, violations)
	violations = checkDocumentID(FieldDocumentID, command.DocumentID, violations)

	return violations
}

// ExportDocumentsValidator checks export commands.
type ExportDocumentsValidator struct{}

// NewExportDocumentsValidator constructs the validator for ExportDocuments.
func NewExportDocumentsValidator() *ExportDocumentsValidator {
	return &ExportDocumentsValidator{}
}

// RequestName implements the dispatch validator contract.
func (v *ExportDocumentsValidator) RequestName() string { return models.RequestExportDocuments }

// Validate evaluates every rule and returns every violation found.
func (v *ExportDocumentsValidator) Validate(ctx context.Context, request dispatch.Request) []dispatch.Violation {
	command, ok := request.(models.ExportDocumentsCommand)
	if !ok {
		return wrongShape(models.RequestExportDocuments)
	}

	return checkOwner(command.OwnerID, nil)
}
