package response

import "qr-attendance/internal/data/entity"

type CheckinResponse struct {
	PresenceID string                `json:"presence_id"`
	Status     entity.PresenceStatus `json:"status"`
}
