package repository

import (
	"context"
	"fmt"

	"qr-attendance/internal/data/entity"
	"qr-attendance/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TokenRepository interface {
	// Append durably records a newly issued token.
	Append(ctx context.Context, token *entity.Token) error
	// FindMatch returns a token whose (token, course_id, session_id) exactly
	// equals the arguments, or nil when no such token exists. A token is only
	// valid for the course/session it was issued under.
	FindMatch(ctx context.Context, token, courseID, sessionID string) (*entity.Token, error)
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

func (r *tokenRepository) Append(ctx context.Context, token *entity.Token) error {
	query := `
		INSERT INTO tokens (token, course_id, session_id, expires_at, issued_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		token.Token,
		token.CourseID,
		token.SessionID,
		token.ExpiresAt,
		token.IssuedAt,
	)

	if err != nil {
		r.log.Error("Failed to append token",
			zap.Error(err),
			zap.String("course_id", token.CourseID),
			zap.String("session_id", token.SessionID),
		)
		return fmt.Errorf("append token %s: %w", token.Token, err)
	}

	return nil
}

func (r *tokenRepository) FindMatch(ctx context.Context, token, courseID, sessionID string) (*entity.Token, error) {
	query := `
		SELECT token, course_id, session_id, expires_at, issued_at
		FROM tokens
		WHERE token = $1
		  AND course_id = $2
		  AND session_id = $3
		LIMIT 1
	`

	var tok entity.Token
	err := r.db.QueryRow(ctx, query, token, courseID, sessionID).Scan(
		&tok.Token,
		&tok.CourseID,
		&tok.SessionID,
		&tok.ExpiresAt,
		&tok.IssuedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find token",
			zap.Error(err),
			zap.String("course_id", courseID),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("find token for course %s session %s: %w", courseID, sessionID, err)
	}

	return &tok, nil
}
