// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-doc-vault/internal/app"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi's default behaviour is to respond with HTTP 405 Method Not Allowed
// whenever a request path matches a registered route but the HTTP method
// is not handled. This function overrides that behaviour and responds with
// HTTP 404 Not Found instead, hiding the existence of the route from
// callers that probe it with unsupported methods.
//
// The pattern lookup goes through [chi.Mux.Match] with a fresh routing
// context, so parameterised segments such as /api/documents/{id} are
// expanded the same way the normal dispatch path expands them. If the
// requested method turns out to be registered after all, the request is
// forwarded to the router's usual ServeHTTP pipeline.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		// Re-run the match with a throwaway routing context. MethodNotAllowed
		// fires when the path matched but the method did not, so this is
		// expected to fail for every well-formed request that lands here.
		routingContext := chi.NewRouteContext()
		if router.Match(routingContext, requestedHTTPMethod, requestedURL) {
			// The method is registered after all; delegate to the normal pipeline.
			router.ServeHTTP(w, r)
			return
		}

		// 404 instead of the default 405 to avoid leaking route existence.
		utils.WriteJSON(w, models.ErrorResponse{
			Code:    app.CodeNotFound,
			Message: "route was not found",
		}, http.StatusNotFound)
	}
}
