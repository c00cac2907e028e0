package store

import "github.com/MKhiriev/go-doc-vault/internal/logger"

// Storages bundles every repository backed by one database, plus the session
// factory the dispatch pipeline uses to pin a connection per request.
type Storages struct {
	UserRepository       UserRepository
	DocumentRepository   DocumentRepository
	IndexQueueRepository IndexQueueRepository
	Sessions             *Sessions
}

// NewStorages wires all repositories over the given database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:       NewUserRepository(db, logger),
		DocumentRepository:   NewDocumentRepository(db, logger),
		IndexQueueRepository: NewIndexQueueRepository(db, logger),
		Sessions:             NewSessions(db, logger),
	}
}
