package model

import "time"

// WordCount is the per-session aggregate for one normalized word.
// Exactly one exists per (session, word) pair; Count equals the number
// of accepted submissions of that word in the session.
type WordCount struct {
	Word      string
	Count     int
	UpdatedAt time.Time
}

// Snapshot is a point-in-time read of a session's status, player count
// and ranked tally. Words are ordered by count descending, ties broken
// by word ascending; TopWord is the first entry or nil when the session
// has no words yet.
type Snapshot struct {
	ID          SessionID
	Code        SessionCode
	Status      SessionStatus
	PlayerCount int
	Words       []WordCount
	TopWord     *WordCount
}
