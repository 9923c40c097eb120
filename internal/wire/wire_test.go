package wire_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qr-attendance/internal/data/repository"
	"qr-attendance/internal/wire"
	"qr-attendance/pkg/database"
	"qr-attendance/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func newTestApp(t *testing.T) *wire.App {
	t.Helper()
	config := &utils.Config{
		Token:     utils.TokenConfig{ExpiryMinutes: 5},
		RateLimit: utils.RateLimitConfig{PerMinute: 10000},
	}
	repo := repository.NewMemoryRepository(zap.NewNop())
	return wire.Wiring(repo, config, zap.NewNop())
}

func do(t *testing.T, app *wire.App, method, path, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func TestEndToEndScenario(t *testing.T) {
	app := newTestApp(t)

	// 1. Issue a token for (C1, S1)
	code, env := do(t, app, http.MethodPost, "/api/tokens",
		`{"course_id":"C1","session_id":"S1"}`)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.OK)

	var issued struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &issued))
	require.True(t, strings.HasPrefix(issued.Token, "TKN-"))
	require.NotEmpty(t, issued.ExpiresAt)

	// 2. Check in against it
	code, env = do(t, app, http.MethodPost, "/api/checkins",
		`{"user_id":"U1","device_id":"D1","course_id":"C1","session_id":"S1","token":"`+issued.Token+`"}`)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.OK)

	var checkin struct {
		PresenceID string `json:"presence_id"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &checkin))
	require.True(t, strings.HasPrefix(checkin.PresenceID, "PR-"))
	require.Equal(t, "checked_in", checkin.Status)

	// 3. Repeating the identical check-in is a duplicate
	code, env = do(t, app, http.MethodPost, "/api/checkins",
		`{"user_id":"U1","device_id":"D1","course_id":"C1","session_id":"S1","token":"`+issued.Token+`"}`)
	require.Equal(t, http.StatusConflict, code)
	require.False(t, env.OK)
	require.Equal(t, "already_checked_in", env.Error)

	// 4. Status reflects the committed record
	code, env = do(t, app, http.MethodGet, "/api/status?user_id=U1&course_id=C1&session_id=S1", "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.OK)

	var status struct {
		UserID string  `json:"user_id"`
		Status string  `json:"status"`
		LastTS *string `json:"last_ts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	require.Equal(t, "U1", status.UserID)
	require.Equal(t, "checked_in", status.Status)
	require.NotNil(t, status.LastTS)

	// 5. A token string never issued is invalid
	code, env = do(t, app, http.MethodPost, "/api/checkins",
		`{"user_id":"U2","device_id":"D1","course_id":"C1","session_id":"S1","token":"TKN-000000"}`)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "token_invalid", env.Error)
}

func TestEnvelopeContract(t *testing.T) {
	t.Run("unknown route", func(t *testing.T) {
		app := newTestApp(t)
		code, env := do(t, app, http.MethodPost, "/api/nope", `{}`)
		require.Equal(t, http.StatusNotFound, code)
		require.False(t, env.OK)
		require.Equal(t, "endpoint_not_found", env.Error)
	})

	t.Run("wrong method on a known route", func(t *testing.T) {
		app := newTestApp(t)
		code, env := do(t, app, http.MethodGet, "/api/tokens", "")
		require.Equal(t, http.StatusNotFound, code)
		require.Equal(t, "endpoint_not_found", env.Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		app := newTestApp(t)
		code, env := do(t, app, http.MethodPost, "/api/tokens", `{"course_id":`)
		require.Equal(t, http.StatusBadRequest, code)
		require.True(t, strings.HasPrefix(env.Error, "bad_request"))
	})

	t.Run("missing fields listed in error code", func(t *testing.T) {
		app := newTestApp(t)
		code, env := do(t, app, http.MethodPost, "/api/checkins", `{"user_id":"U1"}`)
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, "missing_field: course_id, device_id, session_id, token", env.Error)
	})

	t.Run("status without identifiers", func(t *testing.T) {
		app := newTestApp(t)
		code, env := do(t, app, http.MethodGet, "/api/status", "")
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, "missing_field: course_id, session_id, user_id", env.Error)
	})

	t.Run("health", func(t *testing.T) {
		app := newTestApp(t)
		code, env := do(t, app, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, code)
		require.True(t, env.OK)
	})

	t.Run("health with unreachable store answers a stable code", func(t *testing.T) {
		config := &utils.Config{RateLimit: utils.RateLimitConfig{PerMinute: 10000}}
		repo := repository.NewRedisRepository(database.NewRedis("127.0.0.1:1"), zap.NewNop())
		app := wire.Wiring(repo, config, zap.NewNop())

		code, env := do(t, app, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusServiceUnavailable, code)
		require.False(t, env.OK)
		require.Equal(t, "storage_unavailable", env.Error)
	})
}

func TestNumericIdentifiersTolerated(t *testing.T) {
	app := newTestApp(t)

	// Issue with numeric ids
	code, env := do(t, app, http.MethodPost, "/api/tokens",
		`{"course_id":12,"session_id":3}`)
	require.Equal(t, http.StatusCreated, code)

	var issued struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &issued))

	// Check in with the same ids as strings
	code, env = do(t, app, http.MethodPost, "/api/checkins",
		`{"user_id":7,"device_id":"D1","course_id":"12","session_id":"3","token":"`+issued.Token+`"}`)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.OK)

	// Duplicate even when the user id switches type
	code, env = do(t, app, http.MethodPost, "/api/checkins",
		`{"user_id":"7","device_id":"D2","course_id":12,"session_id":3,"token":"`+issued.Token+`"}`)
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, "already_checked_in", env.Error)

	// Status by string form
	code, env = do(t, app, http.MethodGet, "/api/status?user_id=7&course_id=12&session_id=3", "")
	require.Equal(t, http.StatusOK, code)

	var status struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	require.Equal(t, "checked_in", status.Status)
}
