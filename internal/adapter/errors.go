package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
)

var (
	// ErrIndexerUnavailable reports that the search indexer cannot serve
	// requests right now. It wraps [dispatch.ErrDependencyUnavailable], so
	// the boundary reports the failure as a temporary downstream outage.
	ErrIndexerUnavailable = fmt.Errorf("%w: search indexer unavailable", dispatch.ErrDependencyUnavailable)

	// ErrIndexRejected reports that the indexer refused the payload. A
	// rejection means the payload we build is malformed; retrying the same
	// document will not help.
	ErrIndexRejected = errors.New("indexer rejected the document")
)
