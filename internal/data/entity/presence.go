package entity

import (
	"strings"
	"time"
)

type PresenceStatus string

const (
	StatusCheckedIn    PresenceStatus = "checked_in"
	StatusNotCheckedIn PresenceStatus = "not_checked_in"
)

// PresenceRecord is one completed check-in. Records are append-only; at most
// one record may exist per normalized (user_id, course_id, session_id) triple.
type PresenceRecord struct {
	PresenceID string         `db:"presence_id"`
	UserID     string         `db:"user_id"`
	DeviceID   string         `db:"device_id"`
	CourseID   string         `db:"course_id"`
	SessionID  string         `db:"session_id"`
	Token      string         `db:"token"`
	Status     PresenceStatus `db:"status"`
	Timestamp  time.Time      `db:"timestamp"`
}

// Normalize coerces an identifier to trimmed text for comparison. Callers may
// submit the same id as "U1", " U1 " or the number 1; stored and submitted
// values are normalized on both sides before comparing.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}
