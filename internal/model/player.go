package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents one anonymous participant within a session.
// Players are owned by their session and identified by a bearer token
// issued at join time.
type Player struct {
	ID        PlayerID
	SessionID SessionID
	Name      string // unique within the session, case-sensitive
	Token     string
	JoinedAt  time.Time

	// LastSubmitAt is nil until the player's first accepted submission
	LastSubmitAt *time.Time
}
