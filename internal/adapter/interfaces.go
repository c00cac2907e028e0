// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for downstream services.
//
// The only downstream today is the search indexer: document mutations are
// pushed to it either synchronously (reindex requests) or by the background
// sync worker draining the index queue. [Indexer] decouples both callers
// from the underlying protocol; the package ships an HTTP implementation
// ([NewHTTPIndexer]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrIndexerUnavailable] for outages).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/models"
)

// Indexer defines transport-agnostic communication with the search-indexer
// service. Implementations are responsible for serialisation and for mapping
// transport-level failures to the sentinel values defined in this package.
type Indexer interface {
	// IndexDocument pushes one document to the search index, replacing any
	// version the index already holds. Returns [ErrIndexerUnavailable]
	// (wrapped) when the indexer cannot be reached or reports an outage.
	IndexDocument(ctx context.Context, document models.Document) error

	// RemoveDocument drops one document from the search index. Removing a
	// document the index does not hold is not an error. Returns
	// [ErrIndexerUnavailable] (wrapped) on outages.
	RemoveDocument(ctx context.Context, documentID string) error
}
