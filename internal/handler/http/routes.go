package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Init builds the HTTP route table.
//
// Recoverer is the outermost middleware on purpose: errors the classifier
// marks for rethrow are panicked out of respondError and must cross every
// other middleware before the recovery layer turns them into a 500.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Body-Hash"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/health", h.health)
		r.Get("/version", h.getServerVersion)
	})

	// document routes require a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/documents", h.listDocuments)
		r.Get("/api/documents/{id}", h.getDocument)
		r.Post("/api/documents/export", h.exportDocuments)

		// mutating routes additionally honour the X-Body-Hash header
		r.Group(func(m chi.Router) {
			m.Use(h.withIntegrityCheck)
			m.Post("/api/documents", h.createDocument)
			m.Put("/api/documents/{id}", h.updateDocument)
			m.Delete("/api/documents/{id}", h.deleteDocument)
			m.Post("/api/documents/{id}/reindex", h.reindexDocument)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
