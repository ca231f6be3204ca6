package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "github.com/joho/godotenv"
    "gopkg.in/yaml.v3"
)

type Wiki struct {
    BaseURL string `json:"base_url" yaml:"base_url"`
}

type GE struct {
    BaseURL     string `json:"base_url" yaml:"base_url"`
    LinkBaseURL string `json:"link_base_url" yaml:"link_base_url"`
}

type Config struct {
    // UserAgent is sent with every request. The wiki asks for a description
    // of the tool and a contact, e.g. "volume_tracker - @Cook#2222".
    UserAgent         string `json:"user_agent" yaml:"user_agent"`
    RequestTimeoutSec int    `json:"request_timeout_sec" yaml:"request_timeout_sec"`
    LogLevel          string `json:"log_level" yaml:"log_level"`
    StrictLookup      bool   `json:"strict_lookup" yaml:"strict_lookup"`
    Wiki              Wiki   `json:"wiki" yaml:"wiki"`
    GE                GE     `json:"ge" yaml:"ge"`
}

func Default() Config {
    return Config{
        RequestTimeoutSec: 30,
        LogLevel:          "info",
        Wiki:              Wiki{BaseURL: "https://prices.runescape.wiki/api/v1/osrs"},
        GE: GE{
            BaseURL:     "https://secure.runescape.com/m=itemdb_oldschool/api/catalogue",
            LinkBaseURL: "https://platinumtokens.com/item/",
        },
    }
}

// Load reads a JSON or YAML config from path. If path is empty it looks for
// config.json, config.yaml and config.yml; a missing file yields defaults.
// A .env file and environment variables override select fields.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        for _, p := range []string{"config.json", "config.yaml", "config.yml"} {
            if _, err := os.Stat(p); err == nil {
                path = p
                break
            }
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := decode(path, b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }

    // .env is optional; variables already set in the environment win.
    if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
        return cfg, fmt.Errorf("read .env: %w", err)
    }
    applyEnv(&cfg)
    return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
    switch strings.ToLower(filepath.Ext(path)) {
    case ".yaml", ".yml":
        return yaml.Unmarshal(b, cfg)
    default:
        return json.Unmarshal(b, cfg)
    }
}

// Validate reports settings the clients cannot work without.
func (c Config) Validate() error {
    if strings.TrimSpace(c.UserAgent) == "" {
        return fmt.Errorf("user_agent is required (set GE_USER_AGENT)")
    }
    if c.Wiki.BaseURL == "" || c.GE.BaseURL == "" {
        return fmt.Errorf("wiki.base_url and ge.base_url are required")
    }
    if c.RequestTimeoutSec <= 0 {
        return fmt.Errorf("request_timeout_sec must be positive")
    }
    return nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("GE_USER_AGENT"); v != "" { cfg.UserAgent = v }
    if v := os.Getenv("WIKI_BASE_URL"); v != "" { cfg.Wiki.BaseURL = v }
    if v := os.Getenv("GE_BASE_URL"); v != "" { cfg.GE.BaseURL = v }
    if v := os.Getenv("LINK_BASE_URL"); v != "" { cfg.GE.LinkBaseURL = v }
    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.LogLevel = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.RequestTimeoutSec = x }
    }
    if v := os.Getenv("STRICT_LOOKUP"); v != "" {
        switch strings.ToLower(v) {
        case "1","true","yes","y": cfg.StrictLookup = true
        case "0","false","no","n": cfg.StrictLookup = false
        }
    }
}
