package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "strings"
)

type Server struct {
    Port              string `json:"port"`
    RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Chat struct {
    // Provider selects the completion backend: "openai" or "gemini".
    Provider string `json:"provider"`
    Model    string `json:"model"`
    // Endpoint is the chat-completions URL for OpenAI-compatible backends.
    Endpoint string `json:"endpoint"`
    APIKey   string `json:"api_key"`
}

type Feed struct {
    Enabled     bool `json:"enabled"`
    IntervalSec int  `json:"interval_sec"`
}

type Config struct {
    Server Server `json:"server"`
    Chat   Chat   `json:"chat"`
    Feed   Feed   `json:"feed"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", RequestTimeoutSec: 10},
        Chat: Chat{
            Provider: "openai",
            Model:    "gpt-4o-mini",
            Endpoint: "https://api.openai.com/v1/chat/completions",
        },
        Feed: Feed{Enabled: true, IntervalSec: 5},
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
    }
    if v := os.Getenv("CHAT_PROVIDER"); v != "" { cfg.Chat.Provider = strings.ToLower(v) }
    if v := os.Getenv("CHAT_MODEL"); v != "" { cfg.Chat.Model = v }
    if v := os.Getenv("OPENAI_ENDPOINT"); v != "" { cfg.Chat.Endpoint = v }
    if v := os.Getenv("OPENAI_API_KEY"); v != "" { cfg.Chat.APIKey = v }
    // GEMINI_API_KEY doubles as the key when the gemini provider is selected.
    if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.Chat.Provider == "gemini" {
        cfg.Chat.APIKey = v
    }
    if v := os.Getenv("FEED_ENABLED"); v != "" {
        switch strings.ToLower(v) {
        case "1", "true", "yes", "y": cfg.Feed.Enabled = true
        case "0", "false", "no", "n": cfg.Feed.Enabled = false
        }
    }
    if v := os.Getenv("FEED_INTERVAL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Feed.IntervalSec = x }
    }
}
