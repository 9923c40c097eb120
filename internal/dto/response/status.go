package response

import (
	"time"

	"qr-attendance/internal/data/entity"
)

// StatusResponse echoes the normalized identifiers. LastTS is null when the
// user has not checked in; that is a successful response, not an error.
type StatusResponse struct {
	UserID    string                `json:"user_id"`
	CourseID  string                `json:"course_id"`
	SessionID string                `json:"session_id"`
	Status    entity.PresenceStatus `json:"status"`
	LastTS    *time.Time            `json:"last_ts"`
}
