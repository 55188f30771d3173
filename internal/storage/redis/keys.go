package redis

import (
	"fmt"

	"github.com/wordvote/wordvote/internal/model"
)

// Key prefix for all session-vote data
const keyPrefix = "wordvote"

// Key generation functions for each entity type

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// codeIndexKey returns the Redis key for the code -> session_id index
func codeIndexKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:idx:code:%s", keyPrefix, code)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// namesIndexKey returns the Redis key for the HASH of name -> player_id
// claims within a session
func namesIndexKey(sessionID model.SessionID) string {
	return fmt.Sprintf("%s:idx:names:%s", keyPrefix, sessionID)
}

// submitSlotKey returns the Redis key holding a player's last-submit
// time in unix milliseconds
func submitSlotKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:submit_slot:%s", keyPrefix, id)
}

// submissionsKey returns the Redis key for the LIST of a session's submissions
func submissionsKey(sessionID model.SessionID) string {
	return fmt.Sprintf("%s:submissions:%s", keyPrefix, sessionID)
}

// countsKey returns the Redis key for the ZSET of word -> count
func countsKey(sessionID model.SessionID) string {
	return fmt.Sprintf("%s:counts:%s", keyPrefix, sessionID)
}

// countsUpdatedKey returns the Redis key for the HASH of word ->
// last-increment time in unix milliseconds
func countsUpdatedKey(sessionID model.SessionID) string {
	return fmt.Sprintf("%s:counts_updated:%s", keyPrefix, sessionID)
}
