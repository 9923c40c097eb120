package repository

import (
	"context"
	"fmt"

	"qr-attendance/internal/data/entity"
	"qr-attendance/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PresenceRepository interface {
	// Append durably records a completed check-in. Returns
	// ErrDuplicatePresence when a record for the same normalized identity
	// triple already exists; the insert and the uniqueness check are atomic.
	Append(ctx context.Context, rec *entity.PresenceRecord) error
	// FindByIdentity returns the most recent record matching the normalized
	// (user_id, course_id, session_id) triple, or nil when none exists.
	// Arguments must already be normalized.
	FindByIdentity(ctx context.Context, userID, courseID, sessionID string) (*entity.PresenceRecord, error)
}

type presenceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPresenceRepository(db database.PgxIface, log *zap.Logger) PresenceRepository {
	return &presenceRepository{
		db:  db,
		log: log.With(zap.String("repository", "presence")),
	}
}

func (r *presenceRepository) Append(ctx context.Context, rec *entity.PresenceRecord) error {
	// The conflict target is the unique expression index on the trimmed
	// identity triple; zero rows affected means another record got there first.
	query := `
		INSERT INTO presence (presence_id, user_id, device_id, course_id,
		                      session_id, token, status, "timestamp")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (btrim(user_id), btrim(course_id), btrim(session_id)) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		rec.PresenceID,
		rec.UserID,
		rec.DeviceID,
		rec.CourseID,
		rec.SessionID,
		rec.Token,
		rec.Status,
		rec.Timestamp,
	)

	if err != nil {
		r.log.Error("Failed to append presence record",
			zap.Error(err),
			zap.String("user_id", rec.UserID),
			zap.String("course_id", rec.CourseID),
			zap.String("session_id", rec.SessionID),
		)
		return fmt.Errorf("append presence %s: %w", rec.PresenceID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrDuplicatePresence
	}

	return nil
}

func (r *presenceRepository) FindByIdentity(ctx context.Context, userID, courseID, sessionID string) (*entity.PresenceRecord, error) {
	query := `
		SELECT presence_id, user_id, device_id, course_id, session_id,
		       token, status, "timestamp"
		FROM presence
		WHERE btrim(user_id) = $1
		  AND btrim(course_id) = $2
		  AND btrim(session_id) = $3
		ORDER BY "timestamp" DESC
		LIMIT 1
	`

	var rec entity.PresenceRecord
	err := r.db.QueryRow(ctx, query, userID, courseID, sessionID).Scan(
		&rec.PresenceID,
		&rec.UserID,
		&rec.DeviceID,
		&rec.CourseID,
		&rec.SessionID,
		&rec.Token,
		&rec.Status,
		&rec.Timestamp,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find presence record",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("course_id", courseID),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("find presence for user %s: %w", userID, err)
	}

	return &rec, nil
}
