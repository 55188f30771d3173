package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wordvote/wordvote/internal/model"
	"github.com/wordvote/wordvote/internal/storage"
)

// claimSubmitSlotScript atomically enforces the per-player minimum
// submit interval: reject when the stored last-submit time is within
// ARGV[2] ms of ARGV[1], otherwise record ARGV[1] as the new
// last-submit time. Running as a script makes the check-and-set
// linearizable per player.
var claimSubmitSlotScript = redis.NewScript(`
local last = redis.call('GET', KEYS[1])
if last and (tonumber(ARGV[1]) - tonumber(last)) < tonumber(ARGV[2]) then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(session.ID), data, s.cfg.RetentionTTL).Err()
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	idStr, err := s.client.Get(ctx, codeIndexKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	return s.GetSession(ctx, model.SessionID(idStr))
}

func (s *Storage) ClaimSessionCode(ctx context.Context, code model.SessionCode, id model.SessionID) (bool, error) {
	return s.client.SetNX(ctx, codeIndexKey(code), string(id), s.cfg.RetentionTTL).Result()
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, playerKey(player.ID), data, s.cfg.RetentionTTL).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	pipe := s.client.Pipeline()
	playerCmd := pipe.Get(ctx, playerKey(id))
	slotCmd := pipe.Get(ctx, submitSlotKey(id))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	data, err := playerCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}

	// The submit slot is the authoritative last-submit time; the player
	// record itself is never rewritten on submit
	if ms, err := slotCmd.Int64(); err == nil {
		last := time.UnixMilli(ms)
		player.LastSubmitAt = &last
	}

	return &player, nil
}

func (s *Storage) ClaimPlayerName(ctx context.Context, sessionID model.SessionID, name string, playerID model.PlayerID) (bool, error) {
	key := namesIndexKey(sessionID)

	claimed, err := s.client.HSetNX(ctx, key, name, string(playerID)).Result()
	if err != nil {
		return false, err
	}
	if claimed {
		// Keep index retention in sync with the session data
		if err := s.client.Expire(ctx, key, s.cfg.RetentionTTL).Err(); err != nil {
			return false, err
		}
	}
	return claimed, nil
}

func (s *Storage) CountPlayers(ctx context.Context, sessionID model.SessionID) (int, error) {
	n, err := s.client.HLen(ctx, namesIndexKey(sessionID)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Storage) ClaimSubmitSlot(ctx context.Context, playerID model.PlayerID, now time.Time, minInterval time.Duration) (bool, error) {
	res, err := claimSubmitSlotScript.Run(ctx, s.client,
		[]string{submitSlotKey(playerID)},
		now.UnixMilli(),
		minInterval.Milliseconds(),
		s.cfg.RetentionTTL.Milliseconds(),
	).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Submission and tally operations

func (s *Storage) AddSubmission(ctx context.Context, sub *model.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	subsKey := submissionsKey(sub.SessionID)
	cKey := countsKey(sub.SessionID)
	uKey := countsUpdatedKey(sub.SessionID)

	// One transaction commits the audit record and the count increment
	// together; ZINCRBY keeps concurrent increments of the same word
	// from losing updates
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, subsKey, data)
		pipe.ZIncrBy(ctx, cKey, 1, sub.NormalizedWord)
		pipe.HSet(ctx, uKey, sub.NormalizedWord, sub.CreatedAt.UnixMilli())
		pipe.Expire(ctx, subsKey, s.cfg.RetentionTTL)
		pipe.Expire(ctx, cKey, s.cfg.RetentionTTL)
		pipe.Expire(ctx, uKey, s.cfg.RetentionTTL)
		return nil
	})
	return err
}

func (s *Storage) GetSubmissions(ctx context.Context, sessionID model.SessionID) ([]*model.Submission, error) {
	values, err := s.client.LRange(ctx, submissionsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	subs := make([]*model.Submission, 0, len(values))
	for _, val := range values {
		var sub model.Submission
		if err := json.Unmarshal([]byte(val), &sub); err != nil {
			continue // Skip invalid data
		}
		subs = append(subs, &sub)
	}
	return subs, nil
}

func (s *Storage) GetWordCounts(ctx context.Context, sessionID model.SessionID) ([]model.WordCount, error) {
	pipe := s.client.Pipeline()
	countsCmd := pipe.ZRangeWithScores(ctx, countsKey(sessionID), 0, -1)
	updatedCmd := pipe.HGetAll(ctx, countsUpdatedKey(sessionID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	entries, err := countsCmd.Result()
	if err != nil {
		return nil, err
	}
	updated, err := updatedCmd.Result()
	if err != nil {
		return nil, err
	}

	counts := make([]model.WordCount, 0, len(entries))
	for _, entry := range entries {
		word, ok := entry.Member.(string)
		if !ok {
			continue
		}
		wc := model.WordCount{
			Word:  word,
			Count: int(entry.Score),
		}
		if msStr, ok := updated[word]; ok {
			if ms, err := strconv.ParseInt(msStr, 10, 64); err == nil {
				wc.UpdatedAt = time.UnixMilli(ms)
			}
		}
		counts = append(counts, wc)
	}
	return counts, nil
}
