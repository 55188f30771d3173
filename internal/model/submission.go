package model

import "time"

// SubmissionID uniquely identifies a submission
type SubmissionID string

// Submission is the append-only audit record of one accepted word.
// It is written once and never read by the ranking path.
type Submission struct {
	ID             SubmissionID
	SessionID      SessionID
	PlayerID       PlayerID
	RawWord        string
	NormalizedWord string
	CreatedAt      time.Time
}
