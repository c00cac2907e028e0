package models

import "time"

// IndexEntry is one pending search-index synchronization job. Document
// mutations enqueue an entry instead of calling the indexer inline, so a
// slow or unavailable indexer never fails a write; the index sync worker
// drains the queue in the background.
type IndexEntry struct {
	// EntryID is the queue row identifier.
	EntryID int64 `json:"-"`

	// DocumentID is the document to push to the indexer.
	DocumentID string `json:"document_id"`

	// OwnerID is the document owner, denormalized for the indexer payload.
	OwnerID int64 `json:"owner_id"`

	// Attempts counts delivery attempts made so far.
	Attempts int `json:"attempts"`

	// EnqueuedAt is when the mutation enqueued this entry.
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// TableName returns the name of the database table
// associated with the IndexEntry model.
func (e IndexEntry) TableName() string {
	return "index_queue"
}
