// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides the input rules checked by the validation
// stage of the dispatch pipeline and the registry binding them to request
// shapes.
//
// Core concepts:
//   - one validator type per request shape, each encoding the structural
//     and business rules of that shape;
//   - every validator evaluates all of its rules and reports every
//     violation found — it never stops at the first problem, so clients
//     see the complete list;
//   - Registry: the explicit binding table the pipeline consults, built
//     once at startup.
//
// This package decouples validation logic from transport layers and
// storage, enabling reusable, composable, and testable validation
// strategies.
package validators

import (
	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
)

// Registry maps request shapes to the validators bound to them. It
// implements the dispatch pipeline's validator source.
type Registry struct {
	byRequest map[string][]dispatch.Validator
}

// NewRegistry groups the given validators by the request shape each one
// declares.
func NewRegistry(validators ...dispatch.Validator) *Registry {
	byRequest := make(map[string][]dispatch.Validator)
	for _, validator := range validators {
		name := validator.RequestName()
		byRequest[name] = append(byRequest[name], validator)
	}

	return &Registry{byRequest: byRequest}
}

// For returns the validators bound to the request shape. A shape nobody
// checks yields nil, which the validation stage treats as always valid.
func (r *Registry) For(requestName string) []dispatch.Validator {
	return r.byRequest[requestName]
}

// DocumentValidators returns one validator per document request shape —
// the full rule set the server registers at startup.
func DocumentValidators() []dispatch.Validator {
	return []dispatch.Validator{
		NewCreateDocumentValidator(),
		NewGetDocumentValidator(),
		NewListDocumentsValidator(),
		NewUpdateDocumentValidator(),
		NewDeleteDocumentValidator(),
		NewReindexDocumentValidator(),
		NewExportDocumentsValidator(),
	}
}
