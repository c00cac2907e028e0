// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegisteredDispatcher(t *testing.T, documents DocumentService) *dispatch.Dispatcher {
	t.Helper()

	dispatcher := dispatch.NewDispatcher(nil, nil, nil)
	require.NoError(t, RegisterDocumentHandlers(dispatcher, documents))

	return dispatcher
}

func TestRegisterDocumentHandlers_EveryRequestShapeIsRouted(t *testing.T) {
	documents := &mockDocumentRepository{
		findDocumentByIDFn: func(_ context.Context, documentID string) (models.Document, error) {
			return models.Document{ID: documentID, OwnerID: 42, Version: 1}, nil
		},
	}
	svc := newRawDocumentService(documents, &mockIndexQueueRepository{}, &mockIndexer{})
	dispatcher := newRegisteredDispatcher(t, svc)

	requests := []dispatch.Request{
		models.CreateDocumentCommand{OwnerID: 42, Title: "t"},
		models.GetDocumentQuery{OwnerID: 42, DocumentID: "doc"},
		models.ListDocumentsQuery{OwnerID: 42},
		models.UpdateDocumentCommand{OwnerID: 42, Update: models.DocumentUpdate{ID: "doc", Version: 1}},
		models.DeleteDocumentCommand{OwnerID: 42, DocumentID: "doc"},
		models.ReindexDocumentCommand{OwnerID: 42, DocumentID: "doc"},
	}

	for _, request := range requests {
		t.Run(request.Name(), func(t *testing.T) {
			_, err := dispatcher.Dispatch(context.Background(), request)
			require.NoError(t, err)
		})
	}

	// Export is routed too; its handler reports the feature as unimplemented.
	_, err := dispatcher.Dispatch(context.Background(), models.ExportDocumentsCommand{OwnerID: 42})
	require.ErrorIs(t, err, dispatch.ErrNotImplemented)
	assert.NotErrorIs(t, err, dispatch.ErrUnsupportedOperation)
}

func TestRegisterDocumentHandlers_TypedResultsComeBack(t *testing.T) {
	want := models.Document{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", OwnerID: 42, Title: "notes"}
	documents := &mockDocumentRepository{
		findDocumentByIDFn: func(_ context.Context, _ string) (models.Document, error) {
			return want, nil
		},
	}
	svc := newRawDocumentService(documents, &mockIndexQueueRepository{}, &mockIndexer{})
	dispatcher := newRegisteredDispatcher(t, svc)

	got, err := dispatch.Send[models.Document](context.Background(), dispatcher, models.GetDocumentQuery{OwnerID: 42, DocumentID: want.ID})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRegisterDocumentHandlers_SecondRegistrationFails(t *testing.T) {
	svc := newRawDocumentService(&mockDocumentRepository{}, &mockIndexQueueRepository{}, &mockIndexer{})
	dispatcher := newRegisteredDispatcher(t, svc)

	err := RegisterDocumentHandlers(dispatcher, svc)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}
