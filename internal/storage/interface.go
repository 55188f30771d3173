package storage

import (
	"context"
	"time"

	"github.com/wordvote/wordvote/internal/model"
)

// Storage defines the interface for data persistence.
//
// The Claim* methods are atomic check-and-act primitives: they either
// acquire the requested slot/name/code or report false, and two
// concurrent claims for the same key never both succeed. AddSubmission
// is the single commit point of a submission: the audit record and the
// word-count increment apply together or not at all, and increments on
// the same (session, word) pair are linearizable.
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error)
	// ClaimSessionCode reserves a code for the given session. It returns
	// false when the code is already held by another live session.
	ClaimSessionCode(ctx context.Context, code model.SessionCode, id model.SessionID) (bool, error)

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	// ClaimPlayerName reserves a name within a session. It returns false
	// when another player in the same session already holds the name.
	ClaimPlayerName(ctx context.Context, sessionID model.SessionID, name string, playerID model.PlayerID) (bool, error)
	CountPlayers(ctx context.Context, sessionID model.SessionID) (int, error)
	// ClaimSubmitSlot atomically checks the player's last-submit time
	// against minInterval and records now as the new last-submit time on
	// success. Two concurrent claims inside the same interval window
	// cannot both succeed.
	ClaimSubmitSlot(ctx context.Context, playerID model.PlayerID, now time.Time, minInterval time.Duration) (bool, error)

	// Submission and tally operations
	AddSubmission(ctx context.Context, sub *model.Submission) error
	GetSubmissions(ctx context.Context, sessionID model.SessionID) ([]*model.Submission, error)
	// GetWordCounts returns the session's aggregates in no particular order
	GetWordCounts(ctx context.Context, sessionID model.SessionID) ([]model.WordCount, error)
}
