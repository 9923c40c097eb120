package usecase

import (
	"testing"
	"time"

	"qr-attendance/internal/data/repository"
	"qr-attendance/pkg/utils"

	"go.uber.org/zap"
)

// newTestService builds the service stack over in-memory stores with a
// controllable clock.
func newTestService(t *testing.T) (*Service, *testClock) {
	t.Helper()

	repo := repository.NewMemoryRepository(zap.NewNop())
	config := &utils.Config{Token: utils.TokenConfig{ExpiryMinutes: 5}}
	svc := NewService(repo, config, zap.NewNop())

	clock := &testClock{now: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)}
	svc.Token.(*tokenService).now = clock.Now
	svc.Checkin.(*checkinService).now = clock.Now

	return svc, clock
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
