package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-doc-vault/internal/app"
	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/internal/jsonutil"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/go-chi/chi/v5"
)

// Document endpoints translate HTTP to commands/queries and hand them to the
// dispatcher; every outcome the pipeline produces goes back through
// respondError. The owner of every request is the authenticated caller —
// the boundary never trusts an owner field from the body.

func (h *Handler) createDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, r, dispatch.ErrAuthenticationRequired)
		return
	}

	var command models.CreateDocumentCommand
	if err := jsonutil.Decode(r.Body, &command); err != nil {
		log.Err(err).Str("func", "*Handler.createDocument").Msg(app.MsgInvalidJSON)
		h.respondBadRequest(w, app.MsgInvalidJSON)
		return
	}
	command.OwnerID = ownerID

	document, err := dispatch.Send[models.Document](r.Context(), h.dispatcher, command)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, document, http.StatusCreated)
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, r, dispatch.ErrAuthenticationRequired)
		return
	}

	query := models.GetDocumentQuery{
		OwnerID:    ownerID,
		DocumentID: chi.URLParam(r, "id"),
	}

	document, err := dispatch.Send[models.Document](r.Context(), h.dispatcher, query)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, document, http.StatusOK)
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, r, dispatch.ErrAuthenticationRequired)
		return
	}

	query := models.ListDocumentsQuery{
		OwnerID: ownerID,
		Tag:     r.URL.Query().Get("tag"),
	}

	var err error
	if query.Type, err = contentTypeParam(r, "type"); err != nil {
		h.respondBadRequest(w, "query parameter \"type\" must be an integer")
		return
	}
	if query.Limit, err = intParam(r, "limit"); err != nil {
		h.respondBadRequest(w, "query parameter \"limit\" must be an integer")
		return
	}
	if query.Offset, err = intParam(r, "offset"); err != nil {
		h.respondBadRequest(w, "query parameter \"offset\" must be an integer")
		return
	}

	documents, err := dispatch.Send[[]models.Document](r.Context(), h.dispatcher, query)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DocumentListResponse{
		Documents: documents,
		Length:    len(documents),
	}, http.StatusOK)
}

func (h *Handler) updateDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, r, dispatch.ErrAuthenticationRequired)
		return
	}

	var update models.DocumentUpdate
	if err := jsonutil.Decode(r.Body, &update); err != nil {
		log.Err(err).Str("func", "*Handler.updateDocument").Msg(app.MsgInvalidJSON)
		h.respondBadRequest(w, app.MsgInvalidJSON)
		return
	}
	// The URL names the document; an id in the body is ignored.
	update.ID = chi.URLParam(r, "id")

	command := models.UpdateDocumentCommand{
		OwnerID: ownerID,
		Update:  update,
	}

	document, err := dispatch.Send[models.Document](r.Context(), h.dispatcher, command)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, document, http.StatusOK)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, r, dispatch.ErrAuthenticationRequired)
		return
	}

	command := models.DeleteDocumentCommand{
		OwnerID:    ownerID,
		DocumentID: chi.URLParam(r, "id"),
	}

	if _, err := dispatch.Send[struct{}](r.Context(), h.dispatcher, command); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reindexDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, r, dispatch.ErrAuthenticationRequired)
		return
	}

	command := models.ReindexDocumentCommand{
		OwnerID:    ownerID,
		DocumentID: chi.URLParam(r, "id"),
	}

	if _, err := dispatch.Send[struct{}](r.Context(), h.dispatcher, command); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportDocuments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, r, dispatch.ErrAuthenticationRequired)
		return
	}

	command := models.ExportDocumentsCommand{OwnerID: ownerID}

	documents, err := dispatch.Send[[]models.Document](r.Context(), h.dispatcher, command)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DocumentListResponse{
		Documents: documents,
		Length:    len(documents),
	}, http.StatusOK)
}

// respondBadRequest writes a structured bad-request body for failures that
// happen before a command exists (malformed JSON, bad query parameters), so
// clients see the same error shape on every path.
func (h *Handler) respondBadRequest(w http.ResponseWriter, message string) {
	utils.WriteJSON(w, models.ErrorResponse{
		Code:    app.CodeBadRequest,
		Message: message,
	}, http.StatusBadRequest)
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func contentTypeParam(r *http.Request, name string) (models.ContentType, error) {
	value, err := intParam(r, name)
	return models.ContentType(value), err
}
