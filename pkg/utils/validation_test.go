package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	type sample struct {
		CourseID  string `json:"course_id" validate:"required"`
		SessionID string `json:"session_id" validate:"required"`
	}

	t.Run("valid struct returns nil", func(t *testing.T) {
		require.Nil(t, ValidateStruct(sample{CourseID: "C1", SessionID: "S1"}))
	})

	t.Run("fields reported by json name", func(t *testing.T) {
		errs := ValidateStruct(sample{CourseID: "C1"})
		require.Len(t, errs, 1)
		require.Contains(t, errs, "session_id")
	})
}

func TestMissingFieldCode(t *testing.T) {
	code := MissingFieldCode(map[string]string{
		"session_id": "This field is required",
		"course_id":  "This field is required",
	})
	require.Equal(t, "missing_field: course_id, session_id", code)
}
