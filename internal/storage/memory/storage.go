package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wordvote/wordvote/internal/model"
	"github.com/wordvote/wordvote/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// All methods take copies in and hand copies out, so callers never
// share mutable state with the store.
type Storage struct {
	mu sync.RWMutex

	sessions         map[model.SessionID]*model.Session
	codeIndex        map[model.SessionCode]model.SessionID
	players          map[model.PlayerID]*model.Player
	nameIndex        map[nameKey]model.PlayerID
	playersBySession map[model.SessionID][]model.PlayerID
	submissions      map[model.SessionID][]*model.Submission
	wordCounts       map[model.SessionID]map[string]*model.WordCount
}

type nameKey struct {
	sessionID model.SessionID
	name      string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:         make(map[model.SessionID]*model.Session),
		codeIndex:        make(map[model.SessionCode]model.SessionID),
		players:          make(map[model.PlayerID]*model.Player),
		nameIndex:        make(map[nameKey]model.PlayerID),
		playersBySession: make(map[model.SessionID][]model.PlayerID),
		submissions:      make(map[model.SessionID][]*model.Submission),
		wordCounts:       make(map[model.SessionID]map[string]*model.WordCount),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *session
	s.sessions[session.ID] = &saved
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) ClaimSessionCode(ctx context.Context, code model.SessionCode, id model.SessionID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.codeIndex[code]; taken {
		return false, nil
	}
	s.codeIndex[code] = id
	return true, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.players[player.ID]; !exists {
		s.playersBySession[player.SessionID] = append(s.playersBySession[player.SessionID], player.ID)
	}
	saved := *player
	s.players[player.ID] = &saved
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	if player.LastSubmitAt != nil {
		last := *player.LastSubmitAt
		copied.LastSubmitAt = &last
	}
	return &copied, nil
}

func (s *Storage) ClaimPlayerName(ctx context.Context, sessionID model.SessionID, name string, playerID model.PlayerID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := nameKey{sessionID: sessionID, name: name}
	if _, taken := s.nameIndex[key]; taken {
		return false, nil
	}
	s.nameIndex[key] = playerID
	return true, nil
}

func (s *Storage) CountPlayers(ctx context.Context, sessionID model.SessionID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.playersBySession[sessionID]), nil
}

func (s *Storage) ClaimSubmitSlot(ctx context.Context, playerID model.PlayerID, now time.Time, minInterval time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[playerID]
	if !ok {
		return false, model.ErrPlayerNotFound
	}
	if player.LastSubmitAt != nil && now.Sub(*player.LastSubmitAt) < minInterval {
		return false, nil
	}
	claimed := now
	player.LastSubmitAt = &claimed
	return true, nil
}

// Submission and tally operations

func (s *Storage) AddSubmission(ctx context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *sub
	s.submissions[sub.SessionID] = append(s.submissions[sub.SessionID], &saved)

	counts, ok := s.wordCounts[sub.SessionID]
	if !ok {
		counts = make(map[string]*model.WordCount)
		s.wordCounts[sub.SessionID] = counts
	}
	if wc, exists := counts[sub.NormalizedWord]; exists {
		wc.Count++
		wc.UpdatedAt = sub.CreatedAt
	} else {
		counts[sub.NormalizedWord] = &model.WordCount{
			Word:      sub.NormalizedWord,
			Count:     1,
			UpdatedAt: sub.CreatedAt,
		}
	}
	return nil
}

func (s *Storage) GetSubmissions(ctx context.Context, sessionID model.SessionID) ([]*model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := s.submissions[sessionID]
	result := make([]*model.Submission, len(subs))
	for i, sub := range subs {
		copied := *sub
		result[i] = &copied
	}
	return result, nil
}

func (s *Storage) GetWordCounts(ctx context.Context, sessionID model.SessionID) ([]model.WordCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := s.wordCounts[sessionID]
	result := make([]model.WordCount, 0, len(counts))
	for _, wc := range counts {
		result = append(result, *wc)
	}
	return result, nil
}
