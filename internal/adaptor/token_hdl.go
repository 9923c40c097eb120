package adaptor

import (
	"encoding/json"
	"net/http"

	"qr-attendance/internal/dto/request"
	"qr-attendance/internal/usecase"
	"qr-attendance/pkg/utils"

	"go.uber.org/zap"
)

type TokenHandler struct {
	service usecase.TokenService
	log     *zap.Logger
}

func NewTokenHandler(service usecase.TokenService, log *zap.Logger) *TokenHandler {
	return &TokenHandler{
		service: service,
		log:     log,
	}
}

// Issue handles POST /api/tokens
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req request.IssueTokenRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseError(w, http.StatusBadRequest, "bad_request: invalid request body")
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseError(w, http.StatusBadRequest, utils.MissingFieldCode(validationErrors))
		return
	}

	response, err := h.service.Issue(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "issue token")
		return
	}

	utils.ResponseCreated(w, response)
}
