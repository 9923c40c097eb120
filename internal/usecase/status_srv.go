package usecase

import (
	"context"
	"fmt"
	"strings"

	"qr-attendance/internal/data/entity"
	"qr-attendance/internal/data/repository"
	"qr-attendance/internal/dto/request"
	"qr-attendance/internal/dto/response"

	"go.uber.org/zap"
)

type StatusService interface {
	GetStatus(ctx context.Context, req *request.StatusRequest) (*response.StatusResponse, error)
}

type statusService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatusService(repo *repository.Repository, log *zap.Logger) StatusService {
	return &statusService{
		repo: repo,
		log:  log,
	}
}

// GetStatus returns the most recent presence record for the normalized
// identity triple. Absence of a check-in is a valid state, answered with
// not_checked_in and a null last_ts rather than an error.
func (s *statusService) GetStatus(ctx context.Context, req *request.StatusRequest) (*response.StatusResponse, error) {
	userID := entity.Normalize(req.UserID.String())
	courseID := entity.Normalize(req.CourseID.String())
	sessionID := entity.Normalize(req.SessionID.String())

	var missing []string
	if userID == "" {
		missing = append(missing, "user_id")
	}
	if courseID == "" {
		missing = append(missing, "course_id")
	}
	if sessionID == "" {
		missing = append(missing, "session_id")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	rec, err := s.repo.Presence.FindByIdentity(ctx, userID, courseID, sessionID)
	if err != nil {
		s.log.Error("Failed to query presence status", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("%w: presence", ErrStorageUnavailable)
	}

	resp := &response.StatusResponse{
		UserID:    userID,
		CourseID:  courseID,
		SessionID: sessionID,
		Status:    entity.StatusNotCheckedIn,
	}
	if rec != nil {
		ts := rec.Timestamp
		resp.Status = rec.Status
		resp.LastTS = &ts
	}

	return resp, nil
}
