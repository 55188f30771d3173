package request

// JoinSessionRequest is the request body for joining a session
type JoinSessionRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SubmitWordRequest is the request body for submitting a word
type SubmitWordRequest struct {
	PlayerID    string `json:"player_id"`
	PlayerToken string `json:"player_token"`
	Word        string `json:"word"`
}

// CloseSessionRequest is the request body for closing a session
type CloseSessionRequest struct {
	HostToken string `json:"host_token"`
}

// RestoreHostRequest is the request body for restoring a host identity
type RestoreHostRequest struct {
	HostToken string `json:"host_token"`
}

// RestorePlayerRequest is the request body for restoring a player identity
type RestorePlayerRequest struct {
	PlayerID    string `json:"player_id"`
	PlayerToken string `json:"player_token"`
}
