package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"qr-attendance/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisIface is the subset of redis.Client the stores use.
type RedisIface interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis list-backed stores. Records are JSON-encoded and RPUSHed, so list
// order is append order. The presence store claims a SETNX guard key on the
// normalized identity triple before appending; the guard is what makes the
// duplicate check atomic across processes.
const (
	redisTokensKey        = "attendance:tokens"
	redisPresenceKey      = "attendance:presence"
	redisPresenceGuardKey = "attendance:presence:guard:%s|%s|%s"
)

type redisTokenRepository struct {
	client RedisIface
	log    *zap.Logger
}

func NewRedisTokenRepository(client RedisIface, log *zap.Logger) TokenRepository {
	return &redisTokenRepository{
		client: client,
		log:    log.With(zap.String("repository", "token-redis")),
	}
}

func (r *redisTokenRepository) Append(ctx context.Context, token *entity.Token) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token %s: %w", token.Token, err)
	}

	if err := r.client.RPush(ctx, redisTokensKey, payload).Err(); err != nil {
		r.log.Error("Failed to append token", zap.Error(err), zap.String("token", token.Token))
		return fmt.Errorf("append token %s: %w", token.Token, err)
	}
	return nil
}

func (r *redisTokenRepository) FindMatch(ctx context.Context, token, courseID, sessionID string) (*entity.Token, error) {
	rows, err := r.client.LRange(ctx, redisTokensKey, 0, -1).Result()
	if err != nil {
		r.log.Error("Failed to scan tokens", zap.Error(err))
		return nil, fmt.Errorf("scan tokens: %w", err)
	}

	for _, raw := range rows {
		var tok entity.Token
		if err := json.Unmarshal([]byte(raw), &tok); err != nil {
			r.log.Warn("Skipping undecodable token row", zap.Error(err))
			continue
		}
		if tok.Token == token && tok.CourseID == courseID && tok.SessionID == sessionID {
			return &tok, nil
		}
	}
	return nil, nil
}

type redisPresenceRepository struct {
	client RedisIface
	log    *zap.Logger
}

func NewRedisPresenceRepository(client RedisIface, log *zap.Logger) PresenceRepository {
	return &redisPresenceRepository{
		client: client,
		log:    log.With(zap.String("repository", "presence-redis")),
	}
}

func (r *redisPresenceRepository) Append(ctx context.Context, rec *entity.PresenceRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode presence %s: %w", rec.PresenceID, err)
	}

	guard := fmt.Sprintf(redisPresenceGuardKey,
		entity.Normalize(rec.UserID),
		entity.Normalize(rec.CourseID),
		entity.Normalize(rec.SessionID),
	)

	claimed, err := r.client.SetNX(ctx, guard, rec.PresenceID, 0).Result()
	if err != nil {
		r.log.Error("Failed to claim presence guard", zap.Error(err), zap.String("guard", guard))
		return fmt.Errorf("claim presence guard: %w", err)
	}
	if !claimed {
		return ErrDuplicatePresence
	}

	if err := r.client.RPush(ctx, redisPresenceKey, payload).Err(); err != nil {
		// Release the guard so a retry after a transient fault is not
		// answered as a duplicate of a record that was never written
		if delErr := r.client.Del(ctx, guard).Err(); delErr != nil {
			r.log.Error("Failed to release presence guard", zap.Error(delErr), zap.String("guard", guard))
		}
		r.log.Error("Failed to append presence record",
			zap.Error(err),
			zap.String("presence_id", rec.PresenceID),
		)
		return fmt.Errorf("append presence %s: %w", rec.PresenceID, err)
	}
	return nil
}

func (r *redisPresenceRepository) FindByIdentity(ctx context.Context, userID, courseID, sessionID string) (*entity.PresenceRecord, error) {
	userID = entity.Normalize(userID)
	courseID = entity.Normalize(courseID)
	sessionID = entity.Normalize(sessionID)

	rows, err := r.client.LRange(ctx, redisPresenceKey, 0, -1).Result()
	if err != nil {
		r.log.Error("Failed to scan presence records", zap.Error(err))
		return nil, fmt.Errorf("scan presence: %w", err)
	}

	// Newest-appended first
	for i := len(rows) - 1; i >= 0; i-- {
		var rec entity.PresenceRecord
		if err := json.Unmarshal([]byte(rows[i]), &rec); err != nil {
			r.log.Warn("Skipping undecodable presence row", zap.Error(err))
			continue
		}
		if entity.Normalize(rec.UserID) == userID &&
			entity.Normalize(rec.CourseID) == courseID &&
			entity.Normalize(rec.SessionID) == sessionID {
			return &rec, nil
		}
	}
	return nil, nil
}
