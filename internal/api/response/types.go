package response

import (
	"time"

	"github.com/wordvote/wordvote/internal/model"
)

// Session is the host's view of a freshly created session
type Session struct {
	SessionID string    `json:"session_id"`
	Code      string    `json:"code"`
	HostToken string    `json:"host_token"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionFromModel converts a model.Session to a response Session
func SessionFromModel(s *model.Session) Session {
	return Session{
		SessionID: string(s.ID),
		Code:      string(s.Code),
		HostToken: s.HostToken,
		Status:    string(s.Status),
		ExpiresAt: s.ExpiresAt,
	}
}

// Join is the response for joining a session
type Join struct {
	SessionID   string `json:"session_id"`
	PlayerID    string `json:"player_id"`
	PlayerToken string `json:"player_token"`
	Name        string `json:"name"`
}

// JoinFromModel converts a model.Player to a Join response
func JoinFromModel(p *model.Player) Join {
	return Join{
		SessionID:   string(p.SessionID),
		PlayerID:    string(p.ID),
		PlayerToken: p.Token,
		Name:        p.Name,
	}
}

// OK is the response for operations that only report success
type OK struct {
	OK bool `json:"ok"`
}

// RestoreHost is the response for a host restore attempt
type RestoreHost struct {
	OK   bool   `json:"ok"`
	Code string `json:"code,omitempty"`
}

// RestorePlayer is the response for a player restore attempt
type RestorePlayer struct {
	OK   bool   `json:"ok"`
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

// WordCount is one entry in a snapshot's ranking
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Snapshot is the response for reading a session's current state
type Snapshot struct {
	SessionID   string      `json:"session_id"`
	Code        string      `json:"code"`
	Status      string      `json:"status"`
	PlayerCount int         `json:"player_count"`
	Words       []WordCount `json:"words"`
	TopWord     *WordCount  `json:"top_word,omitempty"`
}

// SnapshotFromModel converts a model.Snapshot to a response Snapshot
func SnapshotFromModel(s *model.Snapshot) Snapshot {
	words := make([]WordCount, len(s.Words))
	for i, wc := range s.Words {
		words[i] = WordCount{Word: wc.Word, Count: wc.Count}
	}

	resp := Snapshot{
		SessionID:   string(s.ID),
		Code:        string(s.Code),
		Status:      string(s.Status),
		PlayerCount: s.PlayerCount,
		Words:       words,
	}
	if s.TopWord != nil {
		resp.TopWord = &WordCount{Word: s.TopWord.Word, Count: s.TopWord.Count}
	}
	return resp
}
