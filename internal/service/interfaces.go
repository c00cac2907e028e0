package service

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/models"
)

// DocumentService executes the document commands and queries the dispatcher
// routes. Its methods are the terminal handlers of the request pipeline: by
// the time one runs, the request has already passed authorization and
// validation, so the methods concern themselves with domain logic only.
type DocumentService interface {
	CreateDocument(ctx context.Context, command models.CreateDocumentCommand) (models.Document, error)
	GetDocument(ctx context.Context, query models.GetDocumentQuery) (models.Document, error)
	ListDocuments(ctx context.Context, query models.ListDocumentsQuery) ([]models.Document, error)
	UpdateDocument(ctx context.Context, command models.UpdateDocumentCommand) (models.Document, error)
	DeleteDocument(ctx context.Context, command models.DeleteDocumentCommand) error
	ReindexDocument(ctx context.Context, command models.ReindexDocumentCommand) error
	ExportDocuments(ctx context.Context, command models.ExportDocumentsCommand) ([]models.Document, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes build metadata for the version endpoint.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
