package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	IdentityFile string
	Output       string
	Verbose      bool

	Identity Identity
}

// Identity is the locally stored session and player credentials.
// A host entry is written by `session create`, a player entry by `join`.
type Identity struct {
	SessionID   string `json:"session_id,omitempty"`
	Code        string `json:"code,omitempty"`
	HostToken   string `json:"host_token,omitempty"`
	PlayerID    string `json:"player_id,omitempty"`
	PlayerToken string `json:"player_token,omitempty"`
	Name        string `json:"name,omitempty"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("WORDVOTE_SERVER", "http://localhost:8080"),
		IdentityFile: getEnvOrDefault("WORDVOTE_IDENTITY_FILE", defaultIdentityFile()),
		Output:       "text",
		Verbose:      false,
	}
}

// LoadIdentity loads the stored identity from file if present
func (c *Config) LoadIdentity() error {
	data, err := os.ReadFile(c.IdentityFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No identity file is fine
		}
		return err
	}

	return json.Unmarshal(data, &c.Identity)
}

// SaveIdentity writes the identity to the identity file
func (c *Config) SaveIdentity(identity Identity) error {
	c.Identity = identity

	dir := filepath.Dir(c.IdentityFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.IdentityFile, data, 0600)
}

func defaultIdentityFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordvote/identity.json"
	}
	return filepath.Join(home, ".wordvote", "identity.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
