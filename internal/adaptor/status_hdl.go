package adaptor

import (
	"net/http"

	"qr-attendance/internal/dto/request"
	"qr-attendance/internal/usecase"
	"qr-attendance/pkg/utils"

	"go.uber.org/zap"
)

type StatusHandler struct {
	service usecase.StatusService
	log     *zap.Logger
}

func NewStatusHandler(service usecase.StatusService, log *zap.Logger) *StatusHandler {
	return &StatusHandler{
		service: service,
		log:     log,
	}
}

// Get handles GET /api/status?user_id=&course_id=&session_id=
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.StatusRequest{
		UserID:    request.ID(query.Get("user_id")),
		CourseID:  request.ID(query.Get("course_id")),
		SessionID: request.ID(query.Get("session_id")),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseError(w, http.StatusBadRequest, utils.MissingFieldCode(validationErrors))
		return
	}

	response, err := h.service.GetStatus(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get status")
		return
	}

	utils.ResponseOK(w, response)
}
