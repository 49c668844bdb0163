package entity

import "time"

// SessionKind tells which identity list a session points into
type SessionKind string

const (
	SessionKindDoctor  SessionKind = "doctor"
	SessionKindPatient SessionKind = "patient"
)

// Session is a signed-in client's pointer to its current doctor or patient
type Session struct {
	TokenID   string      `json:"token_id"`
	Kind      SessionKind `json:"kind"`
	UserID    int         `json:"user_id"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// IsExpired checks the session against the given instant
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
