package notion

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the Notion credentials and optional defaults. BaseURL exists
// for tests and proxies; it defaults to the public API endpoint.
type Config struct {
	APIKey     string     `json:"api_key"`
	ParentID   string     `json:"parent_id,omitempty"`
	BaseURL    string     `json:"base_url,omitempty"`
	ServerAddr string     `json:"server_addr,omitempty"`
	LLM        *LLMConfig `json:"llm,omitempty"`
}

// LLMConfig configures the optional drafting model used by serve mode. It
// does not affect the sync flow.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// LoadConfig reads JSON config from disk. A missing file is not fatal as long
// as the API key can be resolved from the environment or the key file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	if cfg.APIKey == "" {
		cfg.APIKey = lookupAPIKey()
	}
	if cfg.APIKey == "" {
		return Config{}, errors.New("NOTION_API_KEY not set; export it or add api_key to the config file")
	}
	return cfg, nil
}

// lookupAPIKey checks the NOTION_API_KEY environment variable, then the
// conventional key file under the user's config directory.
func lookupAPIKey() string {
	if key := os.Getenv("NOTION_API_KEY"); key != "" {
		return key
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(home, ".config", "notion", "api_key"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
