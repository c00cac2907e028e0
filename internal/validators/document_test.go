package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocumentID = "01ARZ3NDEKTSV4RRFFQ69G5FAV"

// fieldsOf projects violations onto their field names for compact asserts.
func fieldsOf(violations []dispatch.Violation) []string {
	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// ---- CreateDocument ----

func TestCreateDocumentValidator_TableTest(t *testing.T) {
	validator := NewCreateDocumentValidator()

	tests := []struct {
		name       string
		command    models.CreateDocumentCommand
		wantFields []string
	}{
		{
			name: "valid command",
			command: models.CreateDocumentCommand{
				OwnerID: 42,
				Title:   "shopping list",
				Body:    "milk, eggs",
				Type:    models.PlainText,
				Tags:    []string{"home"},
			},
		},
		{
			name: "empty title",
			command: models.CreateDocumentCommand{
				OwnerID: 42,
				Type:    models.PlainText,
			},
			wantFields: []string{FieldTitle},
		},
		{
			name: "title too long",
			command: models.CreateDocumentCommand{
				OwnerID: 42,
				Title:   strings.Repeat("a", maxTitleLength+1),
				Type:    models.PlainText,
			},
			wantFields: []string{FieldTitle},
		},
		{
			name: "unknown content type",
			command: models.CreateDocumentCommand{
				OwnerID: 42,
				Title:   "notes",
				Type:    models.ContentType(99),
			},
			wantFields: []string{FieldType},
		},
		{
			name: "body too large",
			command: models.CreateDocumentCommand{
				OwnerID: 42,
				Title:   "big one",
				Body:    strings.Repeat("x", maxBodyBytes+1),
				Type:    models.PlainText,
			},
			wantFields: []string{FieldBody},
		},
		{
			name: "blank tag",
			command: models.CreateDocumentCommand{
				OwnerID: 42,
				Title:   "notes",
				Type:    models.PlainText,
				Tags:    []string{"ok", ""},
			},
			wantFields: []string{FieldTags},
		},
		{
			name: "every rule violated at once",
			command: models.CreateDocumentCommand{
				OwnerID: 0,
				Title:   "",
				Type:    models.ContentType(99),
				Tags:    []string{""},
			},
			wantFields: []string{FieldOwnerID, FieldTitle, FieldType, FieldTags},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := validator.Validate(context.Background(), tt.command)

			assert.ElementsMatch(t, tt.wantFields, fieldsOf(violations))
		})
	}
}

// Multiple violations are all reported, never just the first.
func TestCreateDocumentValidator_CollectsAllViolations(t *testing.T) {
	validator := NewCreateDocumentValidator()

	violations := validator.Validate(context.Background(), models.CreateDocumentCommand{
		OwnerID: -1,
		Title:   "",
		Type:    models.ContentType(99),
	})

	require.Len(t, violations, 3)
	assert.ElementsMatch(t, []string{FieldOwnerID, FieldTitle, FieldType}, fieldsOf(violations))
}

// ---- GetDocument ----

func TestGetDocumentValidator_TableTest(t *testing.T) {
	validator := NewGetDocumentValidator()

	tests := []struct {
		name       string
		query      models.GetDocumentQuery
		wantFields []string
	}{
		{
			name:  "valid query",
			query: models.GetDocumentQuery{OwnerID: 42, DocumentID: validDocumentID},
		},
		{
			name:       "empty document id",
			query:      models.GetDocumentQuery{OwnerID: 42},
			wantFields: []string{FieldDocumentID},
		},
		{
			name:       "malformed document id",
			query:      models.GetDocumentQuery{OwnerID: 42, DocumentID: "not-a-ulid"},
			wantFields: []string{FieldDocumentID},
		},
		{
			name:       "missing owner and document",
			query:      models.GetDocumentQuery{},
			wantFields: []string{FieldOwnerID, FieldDocumentID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := validator.Validate(context.Background(), tt.query)

			assert.ElementsMatch(t, tt.wantFields, fieldsOf(violations))
		})
	}
}

// ---- ListDocuments ----

func TestListDocumentsValidator_TableTest(t *testing.T) {
	validator := NewListDocumentsValidator()

	tests := []struct {
		name       string
		query      models.ListDocumentsQuery
		wantFields []string
	}{
		{
			name:  "valid defaults",
			query: models.ListDocumentsQuery{OwnerID: 42},
		},
		{
			name:  "valid explicit paging and filter",
			query: models.ListDocumentsQuery{OwnerID: 42, Type: models.Markdown, Limit: 50, Offset: 100},
		},
		{
			name:       "unknown type filter",
			query:      models.ListDocumentsQuery{OwnerID: 42, Type: models.ContentType(77)},
			wantFields: []string{FieldType},
		},
		{
			name:       "limit above maximum",
			query:      models.ListDocumentsQuery{OwnerID: 42, Limit: models.MaxPageSize + 1},
			wantFields: []string{FieldLimit},
		},
		{
			name:       "negative offset",
			query:      models.ListDocumentsQuery{OwnerID: 42, Offset: -1},
			wantFields: []string{FieldOffset},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := validator.Validate(context.Background(), tt.query)

			assert.ElementsMatch(t, tt.wantFields, fieldsOf(violations))
		})
	}
}

// ---- UpdateDocument ----

func TestUpdateDocumentValidator_TableTest(t *testing.T) {
	validator := NewUpdateDocumentValidator()

	title := "renamed"
	emptyTitle := ""
	body := "new body"

	tests := []struct {
		name       string
		command    models.UpdateDocumentCommand
		wantFields []string
	}{
		{
			name: "valid title update",
			command: models.UpdateDocumentCommand{
				OwnerID: 42,
				Update:  models.DocumentUpdate{ID: validDocumentID, Title: &title, Version: 3},
			},
		},
		{
			name: "no fields to update",
			command: models.UpdateDocumentCommand{
				OwnerID: 42,
				Update:  models.DocumentUpdate{ID: validDocumentID, Version: 3},
			},
			wantFields: []string{FieldUpdate},
		},
		{
			name: "set title must not be empty",
			command: models.UpdateDocumentCommand{
				OwnerID: 42,
				Update:  models.DocumentUpdate{ID: validDocumentID, Title: &emptyTitle, Version: 3},
			},
			wantFields: []string{FieldTitle},
		},
		{
			name: "missing observed version",
			command: models.UpdateDocumentCommand{
				OwnerID: 42,
				Update:  models.DocumentUpdate{ID: validDocumentID, Body: &body},
			},
			wantFields: []string{FieldVersion},
		},
		{
			name: "malformed target id",
			command: models.UpdateDocumentCommand{
				OwnerID: 42,
				Update:  models.DocumentUpdate{ID: "nope", Body: &body, Version: 1},
			},
			wantFields: []string{FieldDocumentID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := validator.Validate(context.Background(), tt.command)

			assert.ElementsMatch(t, tt.wantFields, fieldsOf(violations))
		})
	}
}

// ---- Delete / Reindex / Export ----

func TestDeleteDocumentValidator(t *testing.T) {
	validator := NewDeleteDocumentValidator()

	assert.Empty(t, validator.Validate(context.Background(), models.DeleteDocumentCommand{
		OwnerID:    42,
		DocumentID: validDocumentID,
	}))

	violations := validator.Validate(context.Background(), models.DeleteDocumentCommand{})
	assert.ElementsMatch(t, []string{FieldOwnerID, FieldDocumentID}, fieldsOf(violations))
}

func TestReindexDocumentValidator(t *testing.T) {
	validator := NewReindexDocumentValidator()

	assert.Empty(t, validator.Validate(context.Background(), models.ReindexDocumentCommand{
		OwnerID:    42,
		DocumentID: validDocumentID,
	}))

	violations := validator.Validate(context.Background(), models.ReindexDocumentCommand{
		OwnerID:    42,
		DocumentID: "bad",
	})
	assert.ElementsMatch(t, []string{FieldDocumentID}, fieldsOf(violations))
}

func TestExportDocumentsValidator(t *testing.T) {
	validator := NewExportDocumentsValidator()

	assert.Empty(t, validator.Validate(context.Background(), models.ExportDocumentsCommand{OwnerID: 42}))
	assert.ElementsMatch(t, []string{FieldOwnerID}, fieldsOf(validator.Validate(context.Background(), models.ExportDocumentsCommand{})))
}

// ---- Shape mismatch ----

func TestValidators_WrongShape(t *testing.T) {
	validator := NewCreateDocumentValidator()

	violations := validator.Validate(context.Background(), models.GetDocumentQuery{OwnerID: 42, DocumentID: validDocumentID})

	require.Len(t, violations, 1)
	assert.Equal(t, "request", violations[0].Field)
}

// ---- Registry ----

func TestRegistry_BindsEveryDocumentShape(t *testing.T) {
	registry := NewRegistry(DocumentValidators()...)

	for _, shape := range []string{
		models.RequestCreateDocument,
		models.RequestGetDocument,
		models.RequestListDocuments,
		models.RequestUpdateDocument,
		models.RequestDeleteDocument,
		models.RequestReindexDocument,
		models.RequestExportDocuments,
	} {
		assert.Len(t, registry.For(shape), 1, "shape %s must have its validator", shape)
	}

	assert.Nil(t, registry.For("Unknown"))
}
