package repository

import (
	"context"
	"errors"

	"qr-attendance/pkg/database"

	"go.uber.org/zap"
)

// ErrDuplicatePresence is reported by PresenceRepository.Append when a record
// for the same normalized (user_id, course_id, session_id) triple already
// exists. Every backend enforces this atomically, so two racing check-ins can
// never both commit.
var ErrDuplicatePresence = errors.New("presence record already exists")

// Repository groups the two append-only stores behind one injection point.
// Core logic depends only on the interfaces, never on a concrete backend.
type Repository struct {
	Token    TokenRepository
	Presence PresenceRepository

	ping func(ctx context.Context) error
}

// Ping reports whether the underlying store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

// NewRepository builds Postgres-backed stores.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Token:    NewTokenRepository(db, log),
		Presence: NewPresenceRepository(db, log),
		ping:     db.Ping,
	}
}

// NewMemoryRepository builds in-process stores for dev and tests.
func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		Token:    NewMemoryTokenRepository(log),
		Presence: NewMemoryPresenceRepository(log),
	}
}

// NewRedisRepository builds Redis list-backed stores.
func NewRedisRepository(rdb *database.Redis, log *zap.Logger) *Repository {
	return &Repository{
		Token:    NewRedisTokenRepository(rdb.Client, log),
		Presence: NewRedisPresenceRepository(rdb.Client, log),
		ping:     rdb.Healthy,
	}
}
