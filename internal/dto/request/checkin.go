package request

type CheckinRequest struct {
	UserID    ID `json:"user_id" validate:"required"`
	DeviceID  ID `json:"device_id" validate:"required"`
	CourseID  ID `json:"course_id" validate:"required"`
	SessionID ID `json:"session_id" validate:"required"`
	Token     ID `json:"token" validate:"required"`
}
