package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/app"
	"github.com/MKhiriev/go-doc-vault/internal/jsonutil"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

// register and login live outside the dispatch pipeline: they establish the
// identity the pipeline's authorization stage consumes, so they cannot
// themselves be guarded by it.

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := jsonutil.Decode(r.Body, &user); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		h.respondBadRequest(w, app.MsgInvalidJSON)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg(app.MsgInvalidDataProvided)
			h.respondBadRequest(w, app.MsgInvalidDataProvided)
			return
		case errors.Is(err, store.ErrLoginAlreadyExists):
			log.Err(err).Msg(app.MsgLoginAlreadyExists)
			utils.WriteJSON(w, models.ErrorResponse{
				Code:    app.CodeConflict,
				Message: app.MsgLoginAlreadyExists,
			}, http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			h.respondError(w, r, err)
			return
		}
	}

	h.issueToken(w, r, registeredUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := jsonutil.Decode(r.Body, &user); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		h.respondBadRequest(w, app.MsgInvalidJSON)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg(app.MsgInvalidDataProvided)
			h.respondBadRequest(w, app.MsgInvalidDataProvided)
			return
		case errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("no user was found/wrong password")
			utils.WriteJSON(w, models.ErrorResponse{
				Code:    app.CodeUnauthorized,
				Message: app.MsgInvalidLoginPassword,
			}, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			h.respondError(w, r, err)
			return
		}
	}

	log.Debug().Int64("id", foundUser.UserID).Str("login", foundUser.Login).Msg("user successfully logged in")

	h.issueToken(w, r, foundUser)
}

// issueToken mints a JWT for the authenticated user and writes it both as
// the Authorization header and in the response body.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User) {
	log := logger.FromRequest(r)

	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSON(w, models.ErrorResponse{
			Code:    app.CodeInternalError,
			Message: app.MsgInternalServerError,
		}, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString}, http.StatusOK)
}
