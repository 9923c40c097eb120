package adaptor

import (
	"encoding/json"
	"net/http"

	"qr-attendance/internal/dto/request"
	"qr-attendance/internal/usecase"
	"qr-attendance/pkg/utils"

	"go.uber.org/zap"
)

type CheckinHandler struct {
	service usecase.CheckinService
	log     *zap.Logger
}

func NewCheckinHandler(service usecase.CheckinService, log *zap.Logger) *CheckinHandler {
	return &CheckinHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/checkins
func (h *CheckinHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CheckinRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseError(w, http.StatusBadRequest, "bad_request: invalid request body")
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseError(w, http.StatusBadRequest, utils.MissingFieldCode(validationErrors))
		return
	}

	response, err := h.service.Checkin(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check in")
		return
	}

	utils.ResponseCreated(w, response)
}
