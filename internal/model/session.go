package model

import "time"

// SessionID uniquely identifies a session across the system
type SessionID string

// SessionCode is the short human-typeable code players use to join
type SessionCode string

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	SessionStatusActive SessionStatus = "active"
	SessionStatusClosed SessionStatus = "closed" // Terminal; no closed -> active transition
)

// Session represents one hosted voting round with a bounded lifetime
type Session struct {
	ID        SessionID
	Code      SessionCode
	HostToken string
	Status    SessionStatus
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session's TTL has elapsed at the given time.
// Expiry is evaluated lazily at every access; callers must not assume a
// background sweep has already closed the session.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// EffectiveStatus returns the status the session should present at the
// given time, accounting for TTL expiry that has not been persisted yet.
func (s *Session) EffectiveStatus(now time.Time) SessionStatus {
	if s.Status == SessionStatusActive && s.Expired(now) {
		return SessionStatusClosed
	}
	return s.Status
}
