package service

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/models"
)

// RegisterDocumentHandlers binds every document request shape to its terminal
// handler on the dispatcher. Registration happens once at startup; a failure
// here is a wiring bug, so the first error aborts.
func RegisterDocumentHandlers(dispatcher *dispatch.Dispatcher, documents DocumentService) error {
	registrations := map[string]dispatch.Handler{
		models.RequestCreateDocument: dispatch.NewHandlerFunc(documents.CreateDocument),
		models.RequestGetDocument:    dispatch.NewHandlerFunc(documents.GetDocument),
		models.RequestListDocuments:  dispatch.NewHandlerFunc(documents.ListDocuments),
		models.RequestUpdateDocument: dispatch.NewHandlerFunc(documents.UpdateDocument),
		models.RequestExportDocuments: dispatch.NewHandlerFunc(
			documents.ExportDocuments,
		),
		models.RequestDeleteDocument: dispatch.NewHandlerFunc(
			func(ctx context.Context, command models.DeleteDocumentCommand) (struct{}, error) {
				return struct{}{}, documents.DeleteDocument(ctx, command)
			},
		),
		models.RequestReindexDocument: dispatch.NewHandlerFunc(
			func(ctx context.Context, command models.ReindexDocumentCommand) (struct{}, error) {
				return struct{}{}, documents.ReindexDocument(ctx, command)
			},
		),
	}

	for name, handler := range registrations {
		if err := dispatcher.Register(name, handler); err != nil {
			return err
		}
	}

	return nil
}
