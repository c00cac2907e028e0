// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
)

// contextKey is the private type for context values owned by this package.
type contextKey string

// sessionConnKey carries the *sql.Conn pinned by an open session.
const sessionConnKey contextKey = "store session connection"

// Sessions opens one database connection per dispatched request. Every
// repository call made while the request runs — authorization lookups,
// handler queries, outbox writes — lands on the same connection, released
// back to the pool when the pipeline closes the session.
//
// Sessions implements [dispatch.SessionFactory].
type Sessions struct {
	db     *DB
	logger *logger.Logger
}

// NewSessions constructs the per-request session factory over db.
func NewSessions(db *DB, logger *logger.Logger) *Sessions {
	logger.Debug().Msg("creating database session factory")
	return &Sessions{
		db:     db,
		logger: logger,
	}
}

// Open pins a pool connection to the returned context. Failure to acquire
// one is reported as [ErrStorageUnavailable]: the pool is exhausted or the
// database is unreachable, and the request cannot proceed.
func (s *Sessions) Open(ctx context.Context) (context.Context, dispatch.Session, error) {
	log := logger.FromContext(ctx)

	conn, err := s.db.Conn(ctx)
	if err != nil {
		log.Err(err).
			Str("func", "Sessions.Open").
			Msg("failed to acquire database connection")
		return ctx, nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return context.WithValue(ctx, sessionConnKey, conn), &session{conn: conn}, nil
}

// session holds the pinned connection until the pipeline closes it.
type session struct {
	conn *sql.Conn
}

// Close returns the pinned connection to the pool.
func (s *session) Close() error {
	return s.conn.Close()
}
