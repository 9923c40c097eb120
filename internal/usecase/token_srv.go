package usecase

import (
	"context"
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

type TokenService interface {
	Issue(ctx context.Context, req *request.IssueTokenRequest) (*response.TokenResponse, error)
}

type tokenService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time // injectable for expiry tests
}

func NewTokenService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) TokenService {
	return &tokenService{
		repo:   repo,
		config: config,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *tokenService) Issue(ctx context.Context, req *request.IssueTokenRequest) (*response.TokenResponse, error) {
	// 1. Both scoping identifiers required non-empty. They are stored as
	// supplied; check-in matches them with exact equality.
	courseID := req.CourseID.String()
	sessionID := req.SessionID.String()

	var missing []string
	if entity.Normalize(courseID) == "" {
		missing = append(missing, "course_id")
	}
	if entity.Normalize(sessionID) == "" {
		missing = append(missing, "session_id")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	// 2. Timestamps come from the server clock, never the caller
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.config.Token.Expiry())

	token := &entity.Token{
		Token:     utils.GenerateTokenID(),
		CourseID:  courseID,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
		IssuedAt:  issuedAt,
	}

	// 3. Single durable append; token entropy makes a collision check pointless
	if err := s.repo.Token.Append(ctx, token); err != nil {
		s.log.Error("Failed to store token",
			zap.Error(err),
			zap.String("course_id", courseID),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("%w: tokens", ErrStorageUnavailable)
	}

	metrics.TokensIssued.Inc()

	s.log.Info("Token issued",
		zap.String("token", token.Token),
		zap.String("course_id", courseID),
		zap.String("session_id", sessionID),
		zap.Time("expires_at", expiresAt),
	)

	return &response.TokenResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}, nil
}
