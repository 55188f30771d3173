package tally

import (
	"context"
	"log/slog"
	"sort"

	"github.com/wordvote/wordvote/internal/model"
	"github.com/wordvote/wordvote/internal/storage"
)

// Service owns the per-session word frequencies and produces the
// deterministically ordered ranking consumed by snapshots.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new tally service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Record commits one accepted submission: the audit record and the
// word-count increment apply as a single unit. Concurrent records of
// the same word in the same session never lose an increment.
func (s *Service) Record(ctx context.Context, sub *model.Submission) error {
	if err := s.storage.AddSubmission(ctx, sub); err != nil {
		return err
	}

	s.logger.Debug("word recorded",
		slog.String("session_id", string(sub.SessionID)),
		slog.String("word", sub.NormalizedWord),
	)
	return nil
}

// Rank returns the session's word counts ordered by count descending,
// ties broken by word ascending. The order is total: two calls over
// identical data return identical sequences.
func (s *Service) Rank(ctx context.Context, sessionID model.SessionID) ([]model.WordCount, error) {
	counts, err := s.storage.GetWordCounts(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	return counts, nil
}

// Top returns the highest-ranked word, or nil when the session has no
// words yet
func (s *Service) Top(ctx context.Context, sessionID model.SessionID) (*model.WordCount, error) {
	ranked, err := s.Rank(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}
	top := ranked[0]
	return &top, nil
}
