package usecase

import (
	"context"
	"testing"

	"qr-attendance/internal/data/entity"
	"qr-attendance/internal/dto/request"

	"github.com/stretchr/testify/require"
)

func TestStatusService_GetStatus(t *testing.T) {
	ctx := context.Background()

	statusRequest := func() *request.StatusRequest {
		return &request.StatusRequest{UserID: "U1", CourseID: "C1", SessionID: "S1"}
	}

	t.Run("not checked in is a successful response with null last_ts", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.Status.GetStatus(ctx, statusRequest())
		require.NoError(t, err)
		require.Equal(t, entity.StatusNotCheckedIn, resp.Status)
		require.Nil(t, resp.LastTS)
		require.Equal(t, "U1", resp.UserID)
		require.Equal(t, "C1", resp.CourseID)
		require.Equal(t, "S1", resp.SessionID)
	})

	t.Run("reflects a committed check-in with its timestamp", func(t *testing.T) {
		svc, clock := newTestService(t)
		token := issueTestToken(t, svc, "C1", "S1")

		_, err := svc.Checkin.Checkin(ctx, checkinRequest(token))
		require.NoError(t, err)

		resp, err := svc.Status.GetStatus(ctx, statusRequest())
		require.NoError(t, err)
		require.Equal(t, entity.StatusCheckedIn, resp.Status)
		require.NotNil(t, resp.LastTS)
		require.Equal(t, clock.Now(), *resp.LastTS)
	})

	t.Run("normalizes whitespace in query identifiers", func(t *testing.T) {
		svc, _ := newTestService(t)
		token := issueTestToken(t, svc, "C1", "S1")

		_, err := svc.Checkin.Checkin(ctx, checkinRequest(token))
		require.NoError(t, err)

		resp, err := svc.Status.GetStatus(ctx, &request.StatusRequest{
			UserID:    " U1 ",
			CourseID:  "C1",
			SessionID: " S1",
		})
		require.NoError(t, err)
		require.Equal(t, entity.StatusCheckedIn, resp.Status)
		require.Equal(t, "U1", resp.UserID)
		require.Equal(t, "S1", resp.SessionID)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Status.GetStatus(ctx, &request.StatusRequest{UserID: "U1"})
		require.ErrorIs(t, err, ErrMissingField)
		require.EqualError(t, err, "missing_field: course_id, session_id")
	})

	t.Run("identity is scoped per course and session", func(t *testing.T) {
		svc, _ := newTestService(t)
		token := issueTestToken(t, svc, "C1", "S1")

		_, err := svc.Checkin.Checkin(ctx, checkinRequest(token))
		require.NoError(t, err)

		resp, err := svc.Status.GetStatus(ctx, &request.StatusRequest{
			UserID:    "U1",
			CourseID:  "C1",
			SessionID: "S2",
		})
		require.NoError(t, err)
		require.Equal(t, entity.StatusNotCheckedIn, resp.Status)
	})
}
