package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"qr-attendance/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRedis implements RedisIface in memory so the guard/append sequencing
// can be driven through failure paths.
type fakeRedis struct {
	guards   map[string]string
	rows     map[string][]string
	failPush bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		guards: make(map[string]string),
		rows:   make(map[string][]string),
	}
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if _, ok := f.guards[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.guards[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.guards[key]; ok {
			delete(f.guards, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func (f *fakeRedis) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.failPush {
		return redis.NewIntResult(0, errors.New("connection reset by peer"))
	}
	for _, value := range values {
		f.rows[key] = append(f.rows[key], string(value.([]byte)))
	}
	return redis.NewIntResult(int64(len(f.rows[key])), nil)
}

func (f *fakeRedis) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(append([]string(nil), f.rows[key]...), nil)
}

func testPresenceRecord(id string) *entity.PresenceRecord {
	return &entity.PresenceRecord{
		PresenceID: id,
		UserID:     "U1",
		DeviceID:   "D1",
		CourseID:   "C1",
		SessionID:  "S1",
		Token:      "TKN-ABC123",
		Status:     entity.StatusCheckedIn,
		Timestamp:  time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
	}
}

func TestRedisPresenceRepository_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("failed append releases the guard so a retry can commit", func(t *testing.T) {
		fake := newFakeRedis()
		repo := NewRedisPresenceRepository(fake, zap.NewNop())

		fake.failPush = true
		err := repo.Append(ctx, testPresenceRecord("PR-00000001"))
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrDuplicatePresence)
		require.Empty(t, fake.guards, "guard must not survive a failed append")

		// Nothing was written, so status lookups see no record
		rec, err := repo.FindByIdentity(ctx, "U1", "C1", "S1")
		require.NoError(t, err)
		require.Nil(t, rec)

		// The retry after the fault clears succeeds
		fake.failPush = false
		require.NoError(t, repo.Append(ctx, testPresenceRecord("PR-00000002")))

		rec, err = repo.FindByIdentity(ctx, "U1", "C1", "S1")
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "PR-00000002", rec.PresenceID)
	})

	t.Run("second append for the same identity is a duplicate", func(t *testing.T) {
		fake := newFakeRedis()
		repo := NewRedisPresenceRepository(fake, zap.NewNop())

		require.NoError(t, repo.Append(ctx, testPresenceRecord("PR-00000001")))

		err := repo.Append(ctx, testPresenceRecord("PR-00000003"))
		require.ErrorIs(t, err, ErrDuplicatePresence)

		// The original record is untouched
		rec, err := repo.FindByIdentity(ctx, "U1", "C1", "S1")
		require.NoError(t, err)
		require.Equal(t, "PR-00000001", rec.PresenceID)
	})
}
