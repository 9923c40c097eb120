package entity

import "time"

// Token is one issued QR code for a (course, session) pair. Tokens are
// immutable once written; expiry is enforced by comparison at validation
// time, never by deletion.
type Token struct {
	Token     string    `db:"token"`
	CourseID  string    `db:"course_id"`
	SessionID string    `db:"session_id"`
	ExpiresAt time.Time `db:"expires_at"`
	IssuedAt  time.Time `db:"issued_at"`
}
