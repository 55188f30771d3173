package registry

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/wordvote/wordvote/internal/dependencies/clock"
	"github.com/wordvote/wordvote/internal/model"
	"github.com/wordvote/wordvote/internal/services/codes"
	"github.com/wordvote/wordvote/internal/storage"
)

// MaxNameLength bounds player names after trimming
const MaxNameLength = 24

// DefaultMinSubmitInterval is the per-player minimum spacing between
// accepted submissions
const DefaultMinSubmitInterval = 800 * time.Millisecond

// Config holds configuration for the player registry
type Config struct {
	MinSubmitInterval time.Duration
}

// DefaultConfig returns default registry configuration
func DefaultConfig() Config {
	return Config{
		MinSubmitInterval: DefaultMinSubmitInterval,
	}
}

// Service owns player identity within a session: name uniqueness,
// bearer-token authentication and the per-player submit rate limit.
type Service struct {
	storage storage.Storage
	codes   *codes.Generator
	clock   clock.Clock
	logger  *slog.Logger

	minSubmitInterval time.Duration
}

// New creates a new registry service
func New(storage storage.Storage, codes *codes.Generator, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.MinSubmitInterval == 0 {
		cfg.MinSubmitInterval = DefaultMinSubmitInterval
	}
	return &Service{
		storage:           storage,
		codes:             codes,
		clock:             clock,
		logger:            logger,
		minSubmitInterval: cfg.MinSubmitInterval,
	}
}

// CleanName trims and length-bounds a submitted player name
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	return name
}

// Join registers a new player in the given session. The caller is
// responsible for having verified the session is active.
func (s *Service) Join(ctx context.Context, sessionID model.SessionID, name string) (*model.Player, error) {
	name = CleanName(name)
	if name == "" {
		return nil, model.ErrNameRequired
	}

	player := &model.Player{
		ID:        model.PlayerID(uuid.NewString()),
		SessionID: sessionID,
		Name:      name,
		Token:     s.codes.Token(),
		JoinedAt:  s.clock.Now(),
	}

	claimed, err := s.storage.ClaimPlayerName(ctx, sessionID, name, player.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, model.ErrNameTaken
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player joined",
		slog.String("session_id", string(sessionID)),
		slog.String("player_id", string(player.ID)),
	)

	return player, nil
}

// Authenticate verifies a player's bearer token. A player belonging to
// a different session is reported as not found; a wrong token yields a
// generic denial with no hint of which check failed.
func (s *Service) Authenticate(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, token string) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.SessionID != sessionID {
		return nil, model.ErrPlayerNotFound
	}
	if subtle.ConstantTimeCompare([]byte(player.Token), []byte(token)) != 1 {
		return nil, model.ErrInvalidToken
	}
	return player, nil
}

// CanSubmit reports whether the player is outside their rate-limit
// window at the given time. This is advisory; ClaimSubmit is the
// authoritative atomic check.
func (s *Service) CanSubmit(player *model.Player, now time.Time) bool {
	return player.LastSubmitAt == nil || now.Sub(*player.LastSubmitAt) >= s.minSubmitInterval
}

// ClaimSubmit atomically consumes the player's submit slot for the
// current interval window. Two racing claims never both succeed.
func (s *Service) ClaimSubmit(ctx context.Context, playerID model.PlayerID, now time.Time) error {
	claimed, err := s.storage.ClaimSubmitSlot(ctx, playerID, now, s.minSubmitInterval)
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrRateLimited
	}
	return nil
}

// PlayerCount returns the number of players registered in a session
func (s *Service) PlayerCount(ctx context.Context, sessionID model.SessionID) (int, error) {
	return s.storage.CountPlayers(ctx, sessionID)
}
