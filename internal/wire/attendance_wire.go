package wire

import (
	"qr-attendance/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAttendance(r chi.Router, handler *adaptor.Handler) {
	// Write actions
	r.Post("/api/tokens", handler.Token.Issue)
	r.Post("/api/checkins", handler.Checkin.Create)

	// Read action
	r.Get("/api/status", handler.Status.Get)
}
