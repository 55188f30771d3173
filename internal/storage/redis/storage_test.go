package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/wordvote/wordvote/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RetentionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	sess := &model.Session{
		ID:        "sess-1",
		Code:      "ABC234",
		HostToken: "host-token",
		Status:    model.SessionStatusActive,
		CreatedAt: s.now,
		ExpiresAt: s.now.Add(30 * time.Minute),
	}

	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(sess.Code, retrieved.Code)
	s.Equal(sess.HostToken, retrieved.HostToken)
	s.True(sess.ExpiresAt.Equal(retrieved.ExpiresAt))
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionHasRetentionTTL() {
	sess := &model.Session{ID: "sess-1", Code: "ABC234", Status: model.SessionStatusActive}
	_ = s.storage.SaveSession(s.ctx, sess)

	ttl := s.mini.TTL(sessionKey("sess-1"))
	s.Greater(ttl, time.Duration(0))
}

func (s *StorageSuite) TestClaimSessionCodeAndLookup() {
	claimed, err := s.storage.ClaimSessionCode(s.ctx, "ABC234", "sess-1")
	s.Require().NoError(err)
	s.True(claimed)

	claimed, err = s.storage.ClaimSessionCode(s.ctx, "ABC234", "sess-2")
	s.Require().NoError(err)
	s.False(claimed)

	sess := &model.Session{ID: "sess-1", Code: "ABC234", Status: model.SessionStatusActive}
	_ = s.storage.SaveSession(s.ctx, sess)

	retrieved, err := s.storage.GetSessionByCode(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Equal(model.SessionID("sess-1"), retrieved.ID)
}

func (s *StorageSuite) TestGetSessionByCodeNotFound() {
	_, err := s.storage.GetSessionByCode(s.ctx, "ZZZZZZ")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        "player-1",
		SessionID: "sess-1",
		Name:      "Ann",
		Token:     "player-token",
		JoinedAt:  s.now,
	}

	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Ann", retrieved.Name)
	s.Nil(retrieved.LastSubmitAt)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerMergesSubmitSlot() {
	player := &model.Player{ID: "player-1", SessionID: "sess-1", Name: "Ann"}
	_ = s.storage.SavePlayer(s.ctx, player)

	claimed, err := s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now, 800*time.Millisecond)
	s.Require().NoError(err)
	s.True(claimed)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.LastSubmitAt)
	s.Equal(s.now.UnixMilli(), retrieved.LastSubmitAt.UnixMilli())
}

func (s *StorageSuite) TestClaimPlayerName() {
	claimed, err := s.storage.ClaimPlayerName(s.ctx, "sess-1", "Ann", "player-1")
	s.Require().NoError(err)
	s.True(claimed)

	claimed, err = s.storage.ClaimPlayerName(s.ctx, "sess-1", "Ann", "player-2")
	s.Require().NoError(err)
	s.False(claimed)

	claimed, err = s.storage.ClaimPlayerName(s.ctx, "sess-2", "Ann", "player-3")
	s.Require().NoError(err)
	s.True(claimed)
}

func (s *StorageSuite) TestCountPlayers() {
	_, _ = s.storage.ClaimPlayerName(s.ctx, "sess-1", "Ann", "player-1")
	_, _ = s.storage.ClaimPlayerName(s.ctx, "sess-1", "Ben", "player-2")
	_, _ = s.storage.ClaimPlayerName(s.ctx, "sess-2", "Cal", "player-3")

	n, err := s.storage.CountPlayers(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(2, n)
}

// Submit slot tests

func (s *StorageSuite) TestClaimSubmitSlotEnforcesInterval() {
	claimed, err := s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now, 800*time.Millisecond)
	s.Require().NoError(err)
	s.True(claimed)

	claimed, err = s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now.Add(500*time.Millisecond), 800*time.Millisecond)
	s.Require().NoError(err)
	s.False(claimed)

	claimed, err = s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now.Add(800*time.Millisecond), 800*time.Millisecond)
	s.Require().NoError(err)
	s.True(claimed)
}

// Submission and tally tests

func (s *StorageSuite) submission(id, word string) *model.Submission {
	return &model.Submission{
		ID:             model.SubmissionID(id),
		SessionID:      "sess-1",
		PlayerID:       "player-1",
		RawWord:        word,
		NormalizedWord: word,
		CreatedAt:      s.now,
	}
}

func (s *StorageSuite) TestAddSubmissionIncrementsCounts() {
	s.Require().NoError(s.storage.AddSubmission(s.ctx, s.submission("sub-1", "apple")))
	s.Require().NoError(s.storage.AddSubmission(s.ctx, s.submission("sub-2", "apple")))
	s.Require().NoError(s.storage.AddSubmission(s.ctx, s.submission("sub-3", "pear")))

	counts, err := s.storage.GetWordCounts(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Len(counts, 2)

	byWord := make(map[string]model.WordCount)
	for _, wc := range counts {
		byWord[wc.Word] = wc
	}
	s.Equal(2, byWord["apple"].Count)
	s.Equal(1, byWord["pear"].Count)
	s.Equal(s.now.UnixMilli(), byWord["apple"].UpdatedAt.UnixMilli())
}

func (s *StorageSuite) TestAddSubmissionKeepsAuditTrail() {
	_ = s.storage.AddSubmission(s.ctx, s.submission("sub-1", "apple"))
	_ = s.storage.AddSubmission(s.ctx, s.submission("sub-2", "pear"))

	subs, err := s.storage.GetSubmissions(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Require().Len(subs, 2)
	s.Equal("apple", subs[0].NormalizedWord)
	s.Equal("pear", subs[1].NormalizedWord)
}

func (s *StorageSuite) TestGetWordCountsEmptySession() {
	counts, err := s.storage.GetWordCounts(s.ctx, "empty")
	s.Require().NoError(err)
	s.Empty(counts)
}
