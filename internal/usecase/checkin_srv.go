package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"qr-attendance/internal/data/entity"
	"qr-attendance/internal/data/repository"
	"qr-attendance/internal/dto/request"
	"qr-attendance/internal/dto/response"
	"qr-attendance/internal/metrics"
	"qr-attendance/pkg/utils"

	"go.uber.org/zap"
)

type CheckinService interface {
	Checkin(ctx context.Context, req *request.CheckinRequest) (*response.CheckinResponse, error)
}

type checkinService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time // injectable for expiry tests
}

func NewCheckinService(repo *repository.Repository, log *zap.Logger) CheckinService {
	return &checkinService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Checkin runs the validation pipeline, short-circuiting on the first
// failure: field presence, token lookup, expiry, duplicate suppression,
// commit. The store is only written on full success.
func (s *checkinService) Checkin(ctx context.Context, req *request.CheckinRequest) (*response.CheckinResponse, error) {
	resp, err := s.checkin(ctx, req)
	metrics.Checkins.WithLabelValues(checkinResult(err)).Inc()
	return resp, err
}

func (s *checkinService) checkin(ctx context.Context, req *request.CheckinRequest) (*response.CheckinResponse, error) {
	// 1. All five fields required non-empty
	if missing := missingCheckinFields(req); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	userID := req.UserID.String()
	courseID := req.CourseID.String()
	sessionID := req.SessionID.String()

	// 2. Token lookup, exact equality on (token, course_id, session_id): a
	// token is only valid for the course/session it was issued under
	token, err := s.repo.Token.FindMatch(ctx, req.Token.String(), courseID, sessionID)
	if err != nil {
		s.log.Error("Failed to look up token", zap.Error(err), zap.String("token", req.Token.String()))
		return nil, fmt.Errorf("%w: tokens", ErrStorageUnavailable)
	}
	if token == nil {
		s.log.Warn("Check-in with unknown token",
			zap.String("token", req.Token.String()),
			zap.String("course_id", courseID),
			zap.String("session_id", sessionID),
		)
		return nil, ErrTokenInvalid
	}

	// 3. Expiry is strict-greater: a check-in at the exact expiry instant is
	// still valid
	now := s.now()
	if now.After(token.ExpiresAt) {
		s.log.Warn("Check-in with expired token",
			zap.String("token", token.Token),
			zap.Time("expires_at", token.ExpiresAt),
		)
		return nil, ErrTokenExpired
	}

	// 4. Duplicate suppression on the normalized identity triple. This
	// pre-scan gives the caller a clean error; the store's atomic append
	// below is what makes the guarantee hold under concurrent requests.
	existing, err := s.repo.Presence.FindByIdentity(ctx,
		entity.Normalize(userID),
		entity.Normalize(courseID),
		entity.Normalize(sessionID),
	)
	if err != nil {
		s.log.Error("Failed to check for duplicate check-in", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("%w: presence", ErrStorageUnavailable)
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	// 5. Commit
	rec := &entity.PresenceRecord{
		PresenceID: utils.GeneratePresenceID(),
		UserID:     userID,
		DeviceID:   req.DeviceID.String(),
		CourseID:   courseID,
		SessionID:  sessionID,
		Token:      token.Token,
		Status:     entity.StatusCheckedIn,
		Timestamp:  now,
	}

	if err := s.repo.Presence.Append(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicatePresence) {
			// Lost the race to a concurrent check-in for the same identity
			return nil, ErrAlreadyCheckedIn
		}
		s.log.Error("Failed to store presence record", zap.Error(err), zap.String("presence_id", rec.PresenceID))
		return nil, fmt.Errorf("%w: presence", ErrStorageUnavailable)
	}

	s.log.Info("Check-in recorded",
		zap.String("presence_id", rec.PresenceID),
		zap.String("user_id", userID),
		zap.String("course_id", courseID),
		zap.String("session_id", sessionID),
	)

	return &response.CheckinResponse{
		PresenceID: rec.PresenceID,
		Status:     rec.Status,
	}, nil
}

func missingCheckinFields(req *request.CheckinRequest) []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value request.ID
	}{
		{"user_id", req.UserID},
		{"device_id", req.DeviceID},
		{"course_id", req.CourseID},
		{"session_id", req.SessionID},
		{"token", req.Token},
	} {
		if entity.Normalize(field.value.String()) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

func checkinResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrTokenInvalid):
		return "token_invalid"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrAlreadyCheckedIn):
		return "already_checked_in"
	default:
		return "error"
	}
}
