package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordvote/wordvote/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) session(id, code string) *model.Session {
	return &model.Session{
		ID:        model.SessionID(id),
		Code:      model.SessionCode(code),
		HostToken: "host-token",
		Status:    model.SessionStatusActive,
		CreatedAt: s.now,
		ExpiresAt: s.now.Add(30 * time.Minute),
	}
}

func (s *StorageSuite) player(id, sessionID, name string) *model.Player {
	return &model.Player{
		ID:        model.PlayerID(id),
		SessionID: model.SessionID(sessionID),
		Name:      name,
		Token:     "player-token",
		JoinedAt:  s.now,
	}
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	sess := s.session("sess-1", "ABC234")
	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(sess.Code, retrieved.Code)
	s.Equal(model.SessionStatusActive, retrieved.Status)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestGetSessionByCode() {
	sess := s.session("sess-1", "ABC234")
	claimed, err := s.storage.ClaimSessionCode(s.ctx, sess.Code, sess.ID)
	s.Require().NoError(err)
	s.True(claimed)
	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	retrieved, err := s.storage.GetSessionByCode(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Equal(sess.ID, retrieved.ID)
}

func (s *StorageSuite) TestGetSessionByCodeNotFound() {
	_, err := s.storage.GetSessionByCode(s.ctx, "ZZZZZZ")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestClaimSessionCodeRejectsDuplicate() {
	claimed, err := s.storage.ClaimSessionCode(s.ctx, "ABC234", "sess-1")
	s.Require().NoError(err)
	s.True(claimed)

	claimed, err = s.storage.ClaimSessionCode(s.ctx, "ABC234", "sess-2")
	s.Require().NoError(err)
	s.False(claimed)
}

func (s *StorageSuite) TestSavedSessionIsDetachedFromCaller() {
	sess := s.session("sess-1", "ABC234")
	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	sess.Status = model.SessionStatusClosed

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(model.SessionStatusActive, retrieved.Status)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := s.player("player-1", "sess-1", "Ann")
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

func (s *StorageSuite) TestClaimPlayerNameRejectsDuplicateInSession() {
	claimed, err := s.storage.ClaimPlayerName(s.ctx, "sess-1", "Ann", "player-1")
	s.Require().NoError(err)
	s.True(claimed)

	claimed, err = s.storage.ClaimPlayerName(s.ctx, "sess-1", "Ann", "player-2")
	s.Require().NoError(err)
	s.False(claimed)
}

func (s *StorageSuite) TestClaimPlayerNameAllowsSameNameAcrossSessions() {
	claimed, err := s.storage.ClaimPlayerName(s.ctx, "sess-1", "Ann", "player-1")
	s.Require().NoError(err)
	s.True(claimed)

	claimed, err = s.storage.ClaimPlayerName(s.ctx, "sess-2", "Ann", "player-2")
	s.Require().NoError(err)
	s.True(claimed)
}

func (s *StorageSuite) TestCountPlayers() {
	n, err := s.storage.CountPlayers(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(0, n)

	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "sess-1", "Ann"))
	_ = s.storage.SavePlayer(s.ctx, s.player("player-2", "sess-1", "Ben"))
	_ = s.storage.SavePlayer(s.ctx, s.player("player-3", "sess-2", "Cal"))

	n, err = s.storage.CountPlayers(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(2, n)
}

// Submit slot tests

func (s *StorageSuite) TestClaimSubmitSlotFirstClaimSucceeds() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "sess-1", "Ann"))

	claimed, err := s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now, 800*time.Millisecond)
	s.Require().NoError(err)
	s.True(claimed)

	retrieved, _ := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NotNil(retrieved.LastSubmitAt)
	s.Equal(s.now, *retrieved.LastSubmitAt)
}

func (s *StorageSuite) TestClaimSubmitSlotRejectsWithinInterval() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "sess-1", "Ann"))

	claimed, _ := s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now, 800*time.Millisecond)
	s.True(claimed)

	claimed, err := s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now.Add(500*time.Millisecond), 800*time.Millisecond)
	s.Require().NoError(err)
	s.False(claimed)
}

func (s *StorageSuite) TestClaimSubmitSlotAllowsAfterInterval() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "sess-1", "Ann"))

	claimed, _ := s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now, 800*time.Millisecond)
	s.True(claimed)

	claimed, err := s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now.Add(800*time.Millisecond), 800*time.Millisecond)
	s.Require().NoError(err)
	s.True(claimed)
}

func (s *StorageSuite) TestClaimSubmitSlotUnknownPlayer() {
	_, err := s.storage.ClaimSubmitSlot(s.ctx, "nonexistent", s.now, 800*time.Millisecond)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Submission and tally tests

func (s *StorageSuite) submission(id, sessionID, playerID, word string) *model.Submission {
	return &model.Submission{
		ID:             model.SubmissionID(id),
		SessionID:      model.SessionID(sessionID),
		PlayerID:       model.PlayerID(playerID),
		RawWord:        word,
		NormalizedWord: word,
		CreatedAt:      s.now,
	}
}

func (s *StorageSuite) TestAddSubmissionCreatesAndIncrementsCount() {
	s.Require().NoError(s.storage.AddSubmission(s.ctx, s.submission("sub-1", "sess-1", "player-1", "apple")))
	s.Require().NoError(s.storage.AddSubmission(s.ctx, s.submission("sub-2", "sess-1", "player-2", "apple")))
	s.Require().NoError(s.storage.AddSubmission(s.ctx, s.submission("sub-3", "sess-1", "player-1", "pear")))

	counts, err := s.storage.GetWordCounts(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Len(counts, 2)

	byWord := make(map[string]int)
	for _, wc := range counts {
		byWord[wc.Word] = wc.Count
	}
	s.Equal(2, byWord["apple"])
	s.Equal(1, byWord["pear"])
}

func (s *StorageSuite) TestAddSubmissionKeepsAuditTrail() {
	_ = s.storage.AddSubmission(s.ctx, s.submission("sub-1", "sess-1", "player-1", "apple"))
	_ = s.storage.AddSubmission(s.ctx, s.submission("sub-2", "sess-1", "player-1", "pear"))

	subs, err := s.storage.GetSubmissions(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Require().Len(subs, 2)
	s.Equal("apple", subs[0].NormalizedWord)
	s.Equal("pear", subs[1].NormalizedWord)
}

func (s *StorageSuite) TestWordCountsAreSessionScoped() {
	_ = s.storage.AddSubmission(s.ctx, s.submission("sub-1", "sess-1", "player-1", "apple"))
	_ = s.storage.AddSubmission(s.ctx, s.submission("sub-2", "sess-2", "player-2", "apple"))

	counts, err := s.storage.GetWordCounts(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Require().Len(counts, 1)
	s.Equal(1, counts[0].Count)
}

func (s *StorageSuite) TestConcurrentAddSubmissionLosesNoIncrements() {
	const workers = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_ = s.storage.AddSubmission(s.ctx, &model.Submission{
				ID:             model.SubmissionID(string(rune('a' + i%26))),
				SessionID:      "sess-1",
				PlayerID:       "player-1",
				RawWord:        "apple",
				NormalizedWord: "apple",
				CreatedAt:      s.now,
			})
		}(i)
	}
	wg.Wait()

	counts, err := s.storage.GetWordCounts(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Require().Len(counts, 1)
	s.Equal(workers, counts[0].Count)
}

func (s *StorageSuite) TestConcurrentSubmitSlotClaimsAdmitExactlyOne() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "sess-1", "Ann"))

	const workers = 10
	results := make(chan bool, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			claimed, err := s.storage.ClaimSubmitSlot(s.ctx, "player-1", s.now, 800*time.Millisecond)
			s.NoError(err)
			results <- claimed
		}()
	}
	wg.Wait()
	close(results)

	admitted := 0
	for claimed := range results {
		if claimed {
			admitted++
		}
	}
	s.Equal(1, admitted)
}
