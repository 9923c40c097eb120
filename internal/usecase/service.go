package usecase

import (
	"qr-attendance/internal/data/repository"
	"qr-attendance/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Token   TokenService
	Checkin CheckinService
	Status  StatusService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Token:   NewTokenService(repo, config, log),
		Checkin: NewCheckinService(repo, log),
		Status:  NewStatusService(repo, log),
	}
}
