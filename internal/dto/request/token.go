package request

type IssueTokenRequest struct {
	CourseID  ID `json:"course_id" validate:"required"`
	SessionID ID `json:"session_id" validate:"required"`
}
