package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-doc-vault/internal/jsonutil"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, name, password, read_only, created_at)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, login, name, password, read_only, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password, read_only, created_at
    FROM users
    WHERE login = $1;`

	saveDocument = `INSERT INTO documents (id, owner_id, title, body, type, tags, version, deleted, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	resolveDocumentOwner = `SELECT owner_id
    FROM documents
    WHERE id = $1 AND deleted = false;`

	// deleteDocumentQuery soft-deletes one document under optimistic locking.
	// The scalar subqueries always yield exactly one row:
	//   - both columns NULL            -> document not found
	//   - id NULL, version non-NULL    -> version mismatch, nothing updated
	//   - both non-NULL                -> soft-delete applied
	deleteDocumentQuery = `WITH target_document AS (
        SELECT id, version FROM documents WHERE id = $1 AND deleted = false
    ), updated_document AS (
        UPDATE documents
        SET deleted = true, version = version + 1, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1 AND deleted = false AND version = $2
        RETURNING id
    )
    SELECT (SELECT id FROM updated_document), (SELECT version FROM target_document);`

	// enqueueIndexEntry keeps at most one pending entry per document: a
	// repeated enqueue refreshes the timestamp and resets the attempt counter.
	enqueueIndexEntry = `INSERT INTO index_queue (document_id, owner_id, attempts, enqueued_at)
    VALUES ($1, $2, 0, $3)
    ON CONFLICT (document_id) DO UPDATE SET enqueued_at = excluded.enqueued_at, attempts = 0
    RETURNING entry_id;`

	dequeueIndexEntries = `SELECT entry_id, document_id, owner_id, attempts, enqueued_at
    FROM index_queue
    ORDER BY enqueued_at
    LIMIT $1;`

	removeDocumentIndexEntries = `DELETE FROM index_queue
    WHERE document_id = $1;`
)

// queryBuilder is the squirrel entry point shared by the dynamic builders.
// PostgreSQL-style $N placeholders are used on both backends: SQLite numbers
// its parameters in order of first occurrence, so positional binding matches.
var queryBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var (
	documentsTable  = models.Document{}.TableName()
	indexQueueTable = models.IndexEntry{}.TableName()
)

// documentColumns lists the "documents" columns in scan order.
var documentColumns = []string{
	"id",
	"owner_id",
	"title",
	"body",
	"type",
	"tags",
	"version",
	"deleted",
	"created_at",
	"updated_at",
}

// buildSelectDocumentQuery builds the single-document lookup. Soft-deleted
// records are excluded: a deleted document is gone for every read path.
func buildSelectDocumentQuery(ctx context.Context, documentID string) (string, []any, error) {
	query, args, err := queryBuilder.
		Select(documentColumns...).
		From(documentsTable).
		Where(squirrel.Eq{"id": documentID}).
		Where("deleted = false").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListDocumentsQuery builds the owner-scoped listing with optional
// content-type and tag filters. Paging bounds come in normalized from the
// service layer; the builder does not validate them.
func buildListDocumentsQuery(ctx context.Context, listQuery models.ListDocumentsQuery) (string, []any, error) {
	builder := queryBuilder.
		Select(documentColumns...).
		From(documentsTable).
		Where(squirrel.Eq{"owner_id": listQuery.OwnerID}).
		Where("deleted = false")

	if listQuery.Type != 0 {
		builder = builder.Where(squirrel.Eq{"type": listQuery.Type})
	}

	if listQuery.Tag != "" {
		pattern, err := tagPattern(listQuery.Tag)
		if err != nil {
			return "", nil, err
		}
		builder = builder.Where(squirrel.Like{"tags": pattern})
	}

	builder = builder.
		OrderBy("updated_at DESC", "id").
		Limit(uint64(listQuery.Limit))

	if listQuery.Offset > 0 {
		builder = builder.Offset(uint64(listQuery.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateDocumentQuery builds the partial-update statement. Only fields
// set in update join the SET list; updated_at and the version bump are always
// present. The query is wrapped in the same CTE as [deleteDocumentQuery] so
// the caller can tell "not found" from "version mismatch" in one round trip.
//
// Argument order: document ID first ($1), then the optional SET values in
// declaration order, the observed version last.
func buildUpdateDocumentQuery(ctx context.Context, update models.DocumentUpdate) (string, []any, error) {
	args := make([]any, 0, 5)
	args = append(args, update.ID)

	setClauses := make([]string, 0, 3)
	argIndex := 2

	if update.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, *update.Title)
		argIndex++
	}

	if update.Body != nil {
		setClauses = append(setClauses, fmt.Sprintf("body = $%d", argIndex))
		args = append(args, *update.Body)
		argIndex++
	}

	if update.Tags != nil {
		encoded, err := encodeTags(*update.Tags)
		if err != nil {
			return "", nil, err
		}
		setClauses = append(setClauses, fmt.Sprintf("tags = $%d", argIndex))
		args = append(args, encoded)
		argIndex++
	}

	builder := new(strings.Builder)
	builder.WriteString(`WITH target_document AS (
        SELECT id, version FROM documents WHERE id = $1 AND deleted = false
    ), updated_document AS (
        UPDATE documents
        SET updated_at = CURRENT_TIMESTAMP, version = version + 1`)

	if len(setClauses) > 0 {
		builder.WriteString(", ")
		builder.WriteString(strings.Join(setClauses, ", "))
	}

	fmt.Fprintf(builder, `
        WHERE id = $1 AND deleted = false AND version = $%d
        RETURNING id
    )
    SELECT (SELECT id FROM updated_document), (SELECT version FROM target_document);`, argIndex)

	args = append(args, update.Version)

	return builder.String(), args, nil
}

// buildDeleteIndexEntriesQuery removes delivered outbox entries by primary key.
func buildDeleteIndexEntriesQuery(ctx context.Context, entryIDs []int64) (string, []any, error) {
	query, args, err := queryBuilder.
		Delete(indexQueueTable).
		Where(squirrel.Eq{"entry_id": entryIDs}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildMarkIndexAttemptsQuery bumps the attempt counter on failed entries.
func buildMarkIndexAttemptsQuery(ctx context.Context, entryIDs []int64) (string, []any, error) {
	query, args, err := queryBuilder.
		Update(indexQueueTable).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Where(squirrel.Eq{"entry_id": entryIDs}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// encodeTags stores a tag list as its JSON encoding. A TEXT column with JSON
// inside is portable across both backends, unlike a native array type.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}

	encoded, err := jsonutil.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return string(encoded), nil
}

// decodeTags restores a tag list from its stored JSON encoding.
func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var tags []string
	if err := jsonutil.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return tags, nil
}

// tagPattern builds the LIKE pattern matching one tag inside the stored JSON
// encoding. The quote delimiters of the encoded tag prevent substring hits
// across neighbouring tags; LIKE wildcards inside a tag are not escaped, so a
// tag containing % or _ may over-match, which is acceptable for a filter.
func tagPattern(tag string) (string, error) {
	encoded, err := jsonutil.Marshal(tag)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return "%" + string(encoded) + "%", nil
}
