package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wordvote/wordvote/internal/dependencies/clock"
	"github.com/wordvote/wordvote/internal/dependencies/scheduler"
	"github.com/wordvote/wordvote/internal/model"
	"github.com/wordvote/wordvote/internal/services/codes"
	"github.com/wordvote/wordvote/internal/services/registry"
	"github.com/wordvote/wordvote/internal/services/tally"
	"github.com/wordvote/wordvote/internal/storage"
	"github.com/wordvote/wordvote/internal/words"
)

const (
	// DefaultSessionTTL is the lifetime of a session from creation
	DefaultSessionTTL = 30 * time.Minute

	// CodeAllocationAttempts bounds how many codes Create tries before
	// giving up with ErrCodeSpaceExhausted
	CodeAllocationAttempts = 8
)

// Config holds configuration for the session controller
type Config struct {
	SessionTTL time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		SessionTTL: DefaultSessionTTL,
	}
}

// PlayerRestore is the identity handed back to a returning player
type PlayerRestore struct {
	Code model.SessionCode
	Name string
}

// Controller orchestrates the session lifecycle and the public
// operations: create, join, submit, close, restore and snapshot.
//
// Expiry is lazy: every operation that touches a session's live state
// re-evaluates the TTL first. The scheduler registers a best-effort
// closer at TTL after creation, but no code path assumes it has run.
type Controller struct {
	storage   storage.Storage
	registry  *registry.Service
	tally     *tally.Service
	codes     *codes.Generator
	blocklist *words.Blocklist
	clock     clock.Clock
	scheduler scheduler.Scheduler
	logger    *slog.Logger

	sessionTTL time.Duration
}

// NewController creates a new session controller
func NewController(
	storage storage.Storage,
	registry *registry.Service,
	tally *tally.Service,
	codes *codes.Generator,
	blocklist *words.Blocklist,
	clock clock.Clock,
	scheduler scheduler.Scheduler,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	return &Controller{
		storage:    storage,
		registry:   registry,
		tally:      tally,
		codes:      codes,
		blocklist:  blocklist,
		clock:      clock,
		scheduler:  scheduler,
		logger:     logger,
		sessionTTL: cfg.SessionTTL,
	}
}

// CleanCode canonicalizes a submitted session code for lookup
func CleanCode(code string) model.SessionCode {
	return model.SessionCode(strings.ToUpper(strings.TrimSpace(code)))
}

// Create opens a new session. It claims a freshly generated code
// against storage, retrying up to CodeAllocationAttempts times, and
// schedules the best-effort expiry closer.
func (c *Controller) Create(ctx context.Context) (*model.Session, error) {
	now := c.clock.Now()
	id := model.SessionID(uuid.NewString())

	for attempt := 0; attempt < CodeAllocationAttempts; attempt++ {
		code := model.SessionCode(c.codes.Code())

		claimed, err := c.storage.ClaimSessionCode(ctx, code, id)
		if err != nil {
			return nil, err
		}
		if !claimed {
			continue
		}

		session := &model.Session{
			ID:        id,
			Code:      code,
			HostToken: c.codes.Token(),
			Status:    model.SessionStatusActive,
			CreatedAt: now,
			ExpiresAt: now.Add(c.sessionTTL),
		}

		if err := c.storage.SaveSession(ctx, session); err != nil {
			return nil, err
		}

		c.scheduler.AfterFunc(c.sessionTTL, func() {
			if err := c.Expire(context.Background(), session.ID); err != nil {
				c.logger.Warn("scheduled expiry failed",
					slog.String("session_id", string(session.ID)),
					slog.String("error", err.Error()),
				)
			}
		})

		c.logger.Info("session created",
			slog.String("session_id", string(session.ID)),
			slog.String("code", string(session.Code)),
		)

		return session, nil
	}

	return nil, model.ErrCodeSpaceExhausted
}

// Join adds a player to the session identified by code
func (c *Controller) Join(ctx context.Context, code string, name string) (*model.Player, error) {
	now := c.clock.Now()

	session, err := c.storage.GetSessionByCode(ctx, CleanCode(code))
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, model.ErrSessionUnavailable
		}
		return nil, err
	}

	status, err := c.closeIfExpired(ctx, session, now)
	if err != nil {
		return nil, err
	}
	if status != model.SessionStatusActive {
		return nil, model.ErrSessionUnavailable
	}

	return c.registry.Join(ctx, session.ID, name)
}

// Submit records one word from an authenticated player. Every check
// runs before the atomic commit: a rejected submission leaves no state
// behind, and an accepted one commits the audit record, the counter
// increment and the player's submit slot together.
func (c *Controller) Submit(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, token string, word string) error {
	now := c.clock.Now()

	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return model.ErrSessionClosed
		}
		return err
	}

	status, err := c.closeIfExpired(ctx, session, now)
	if err != nil {
		return err
	}
	if status != model.SessionStatusActive {
		return model.ErrSessionClosed
	}

	if _, err := c.registry.Authenticate(ctx, sessionID, playerID, token); err != nil {
		return err
	}

	normalized := words.Normalize(word)
	if normalized == "" {
		return model.ErrWordInvalid
	}
	if c.blocklist.Blocked(normalized) {
		return model.ErrWordBlocked
	}

	// Rate limit is the final gate so an invalid or blocked word never
	// consumes the player's slot
	if err := c.registry.ClaimSubmit(ctx, playerID, now); err != nil {
		return err
	}

	sub := &model.Submission{
		ID:             model.SubmissionID(uuid.NewString()),
		SessionID:      sessionID,
		PlayerID:       playerID,
		RawWord:        strings.TrimSpace(word),
		NormalizedWord: normalized,
		CreatedAt:      now,
	}

	return c.tally.Record(ctx, sub)
}

// Close transitions the session to closed on behalf of the host.
// Closing an already-closed session is a no-op.
func (c *Controller) Close(ctx context.Context, sessionID model.SessionID, hostToken string) error {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(session.HostToken), []byte(hostToken)) != 1 {
		return model.ErrUnauthorized
	}

	if session.Status == model.SessionStatusClosed {
		return nil
	}

	session.Status = model.SessionStatusClosed
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("session closed",
		slog.String("session_id", string(sessionID)),
	)
	return nil
}

// Expire closes the session if its TTL has elapsed. It is the target
// of the scheduled closer and is idempotent: it tolerates the session
// being gone or already closed and never resurrects one.
func (c *Controller) Expire(ctx context.Context, sessionID model.SessionID) error {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	if session.Status == model.SessionStatusClosed {
		return nil
	}

	if session.Expired(c.clock.Now()) {
		session.Status = model.SessionStatusClosed
		return c.storage.SaveSession(ctx, session)
	}
	return nil
}

// RestoreHost returns the session code to a returning host. Denials
// (unknown session, wrong token, closed or expired session) report
// ok=false rather than an error.
func (c *Controller) RestoreHost(ctx context.Context, sessionID model.SessionID, hostToken string) (model.SessionCode, bool, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	if subtle.ConstantTimeCompare([]byte(session.HostToken), []byte(hostToken)) != 1 {
		return "", false, nil
	}

	status, err := c.closeIfExpired(ctx, session, c.clock.Now())
	if err != nil {
		return "", false, err
	}
	if status != model.SessionStatusActive {
		return "", false, nil
	}

	return session.Code, true, nil
}

// RestorePlayer returns the session code and player name to a
// returning player. Denials report ok=false rather than an error.
func (c *Controller) RestorePlayer(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, token string) (*PlayerRestore, bool, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	status, err := c.closeIfExpired(ctx, session, c.clock.Now())
	if err != nil {
		return nil, false, err
	}
	if status != model.SessionStatusActive {
		return nil, false, nil
	}

	player, err := c.registry.Authenticate(ctx, sessionID, playerID, token)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) || errors.Is(err, model.ErrInvalidToken) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &PlayerRestore{Code: session.Code, Name: player.Name}, true, nil
}

// Snapshot returns a point-in-time read of the session behind a code:
// status, player count and the full ranking. It never writes, so reads
// stay lock-free relative to submitters; a session past its TTL is
// reported closed even before any closer has persisted the transition.
func (c *Controller) Snapshot(ctx context.Context, code string) (*model.Snapshot, error) {
	session, err := c.storage.GetSessionByCode(ctx, CleanCode(code))
	if err != nil {
		return nil, err
	}

	playerCount, err := c.registry.PlayerCount(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	ranked, err := c.tally.Rank(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	snapshot := &model.Snapshot{
		ID:          session.ID,
		Code:        session.Code,
		Status:      session.EffectiveStatus(c.clock.Now()),
		PlayerCount: playerCount,
		Words:       ranked,
	}
	if len(ranked) > 0 {
		top := ranked[0]
		snapshot.TopWord = &top
	}

	return snapshot, nil
}

// closeIfExpired persists the active -> closed transition when the TTL
// has elapsed, returning the session's effective status. Racing the
// scheduled closer is harmless: both writes set the same terminal state.
func (c *Controller) closeIfExpired(ctx context.Context, session *model.Session, now time.Time) (model.SessionStatus, error) {
	if session.Status != model.SessionStatusActive {
		return session.Status, nil
	}

	if session.Expired(now) {
		session.Status = model.SessionStatusClosed
		if err := c.storage.SaveSession(ctx, session); err != nil {
			return "", err
		}
		return model.SessionStatusClosed, nil
	}

	return model.SessionStatusActive, nil
}
