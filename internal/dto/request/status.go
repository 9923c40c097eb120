package request

type StatusRequest struct {
	UserID    ID `json:"user_id" validate:"required"`
	CourseID  ID `json:"course_id" validate:"required"`
	SessionID ID `json:"session_id" validate:"required"`
}
