package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case Join:
		o.printJoin(v)
	case RestoreHost:
		o.printRestoreHost(v)
	case RestorePlayer:
		o.printRestorePlayer(v)
	case Snapshot:
		o.printSnapshot(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code"`
	HostToken string `json:"host_token"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at"`
}

// Join response type
type Join struct {
	SessionID   string `json:"session_id"`
	PlayerID    string `json:"player_id"`
	PlayerToken string `json:"player_token"`
	Name        string `json:"name"`
}

// OKResult response type
type OKResult struct {
	OK bool `json:"ok"`
}

// RestoreHost response type
type RestoreHost struct {
	OK   bool   `json:"ok"`
	Code string `json:"code,omitempty"`
}

// RestorePlayer response type
type RestorePlayer struct {
	OK   bool   `json:"ok"`
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

// WordCount response type
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Snapshot response type
type Snapshot struct {
	SessionID   string      `json:"session_id"`
	Code        string      `json:"code"`
	Status      string      `json:"status"`
	PlayerCount int         `json:"player_count"`
	Words       []WordCount `json:"words"`
	TopWord     *WordCount  `json:"top_word,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.Code)
	fmt.Printf("  ID:         %s\n", s.SessionID)
	fmt.Printf("  Status:     %s\n", s.Status)
	fmt.Printf("  Expires at: %s\n", s.ExpiresAt)
}

func (o *Output) printJoin(j Join) {
	fmt.Printf("Joined session %s as %s\n", j.SessionID, j.Name)
	fmt.Printf("  Player ID: %s\n", j.PlayerID)
}

func (o *Output) printRestoreHost(r RestoreHost) {
	if !r.OK {
		fmt.Println("Restore denied")
		return
	}
	fmt.Printf("Restored host of session %s\n", r.Code)
}

func (o *Output) printRestorePlayer(r RestorePlayer) {
	if !r.OK {
		fmt.Println("Restore denied")
		return
	}
	fmt.Printf("Restored %s in session %s\n", r.Name, r.Code)
}

func (o *Output) printSnapshot(s Snapshot) {
	fmt.Printf("Session: %s (%s)\n", s.Code, s.Status)
	fmt.Printf("  Players: %d\n", s.PlayerCount)
	if len(s.Words) == 0 {
		fmt.Println("  No words yet")
		return
	}
	fmt.Println("  Words:")
	for i, wc := range s.Words {
		fmt.Printf("    %2d. %-24s %d\n", i+1, wc.Word, wc.Count)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Server status: %s\n", h.Status)
}
