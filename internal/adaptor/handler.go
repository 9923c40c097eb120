package adaptor

import (
	"errors"
	"net/http"

	"qr-attendance/internal/usecase"
	"qr-attendance/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Token   *TokenHandler
	Checkin *CheckinHandler
	Status  *StatusHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Token:   NewTokenHandler(service.Token, log),
		Checkin: NewCheckinHandler(service.Checkin, log),
		Status:  NewStatusHandler(service.Status, log),
	}
}

// handleServiceError maps the error taxonomy onto HTTP statuses; the wrapped
// error text is the wire error code.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrMissingField):
		log.Warn(operation+" failed - missing field", zap.Error(err))
		utils.ResponseError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, usecase.ErrTokenInvalid):
		log.Warn(operation+" failed - token invalid", zap.Error(err))
		utils.ResponseError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, usecase.ErrTokenExpired):
		log.Warn(operation+" failed - token expired", zap.Error(err))
		utils.ResponseError(w, http.StatusGone, err.Error())

	case errors.Is(err, usecase.ErrAlreadyCheckedIn):
		log.Warn(operation+" failed - duplicate check-in", zap.Error(err))
		utils.ResponseError(w, http.StatusConflict, err.Error())

	case errors.Is(err, usecase.ErrStorageUnavailable):
		log.Error("Failed to "+operation+" - storage unavailable", zap.Error(err))
		utils.ResponseError(w, http.StatusServiceUnavailable, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseError(w, http.StatusInternalServerError, "server_error: "+err.Error())
	}
}
