package repository

import (
	"context"
	"sync"

	"qr-attendance/internal/data/entity"

	"go.uber.org/zap"
)

// In-memory stores, used in dev and tests. Rows are append-only slices; the
// presence mutex serializes the duplicate re-check with the append so the
// uniqueness guarantee holds under concurrent callers.

type memoryTokenRepository struct {
	mu   sync.RWMutex
	rows []entity.Token
	log  *zap.Logger
}

func NewMemoryTokenRepository(log *zap.Logger) TokenRepository {
	return &memoryTokenRepository{
		log: log.With(zap.String("repository", "token-memory")),
	}
}

func (r *memoryTokenRepository) Append(ctx context.Context, token *entity.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *token)
	return nil
}

func (r *memoryTokenRepository) FindMatch(ctx context.Context, token, courseID, sessionID string) (*entity.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.rows {
		row := r.rows[i]
		if row.Token == token && row.CourseID == courseID && row.SessionID == sessionID {
			return &row, nil
		}
	}
	return nil, nil
}

type memoryPresenceRepository struct {
	mu   sync.RWMutex
	rows []entity.PresenceRecord
	log  *zap.Logger
}

func NewMemoryPresenceRepository(log *zap.Logger) PresenceRepository {
	return &memoryPresenceRepository{
		log: log.With(zap.String("repository", "presence-memory")),
	}
}

func (r *memoryPresenceRepository) Append(ctx context.Context, rec *entity.PresenceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findLocked(rec.UserID, rec.CourseID, rec.SessionID) != nil {
		return ErrDuplicatePresence
	}

	r.rows = append(r.rows, *rec)
	return nil
}

func (r *memoryPresenceRepository) FindByIdentity(ctx context.Context, userID, courseID, sessionID string) (*entity.PresenceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(userID, courseID, sessionID), nil
}

// findLocked scans newest-appended first; caller must hold the lock. The
// arguments may be raw, the stored side is normalized before comparing.
func (r *memoryPresenceRepository) findLocked(userID, courseID, sessionID string) *entity.PresenceRecord {
	userID = entity.Normalize(userID)
	courseID = entity.Normalize(courseID)
	sessionID = entity.Normalize(sessionID)

	for i := len(r.rows) - 1; i >= 0; i-- {
		row := r.rows[i]
		if entity.Normalize(row.UserID) == userID &&
			entity.Normalize(row.CourseID) == courseID &&
			entity.Normalize(row.SessionID) == sessionID {
			return &row
		}
	}
	return nil
}
