// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Agent    AgentConfig    `json:"agent"`
	Channels ChannelsConfig `json:"channels"`
	Provider ProviderConfig `json:"provider"`
	Calendar CalendarConfig `json:"calendar"`
	Storage  StorageConfig  `json:"storage"`
	Digest   DigestConfig   `json:"digest"`
}

type AgentConfig struct {
	// OwnerID is the only chat identity allowed to talk to the assistant.
	OwnerID string `json:"owner_id" env:"NOVACAL_AGENT_OWNER_ID"`
	// OwnerChannel is the transport that reaches the owner for alerts and
	// digests. When empty, the first configured transport is used.
	OwnerChannel      string  `json:"owner_channel" env:"NOVACAL_AGENT_OWNER_CHANNEL"`
	Model             string  `json:"model" env:"NOVACAL_AGENT_MODEL"`
	Temperature       float64 `json:"temperature" env:"NOVACAL_AGENT_TEMPERATURE"`
	MaxTokens         int     `json:"max_tokens" env:"NOVACAL_AGENT_MAX_TOKENS"`
	MaxToolIterations int     `json:"max_tool_iterations" env:"NOVACAL_AGENT_MAX_TOOL_ITERATIONS"`
}

type ChannelsConfig struct {
	Telegram TelegramConfig `json:"telegram"`
	Discord  DiscordConfig  `json:"discord"`
}

type TelegramConfig struct {
	Token string `json:"token" env:"NOVACAL_CHANNELS_TELEGRAM_TOKEN"`
}

type DiscordConfig struct {
	Token string `json:"token" env:"NOVACAL_CHANNELS_DISCORD_TOKEN"`
}

type ProviderConfig struct {
	APIKey  string `json:"api_key" env:"NOVACAL_PROVIDER_API_KEY"`
	APIBase string `json:"api_base" env:"NOVACAL_PROVIDER_API_BASE"`
	Proxy   string `json:"proxy,omitempty" env:"NOVACAL_PROVIDER_PROXY"`
}

type CalendarConfig struct {
	CredentialsFile string `json:"credentials_file" env:"NOVACAL_CALENDAR_CREDENTIALS_FILE"`
	TokenFile       string `json:"token_file" env:"NOVACAL_CALENDAR_TOKEN_FILE"`
	// CredentialsJSON/TokenJSON hold raw JSON for deployments where the
	// credential files are not checked in; they are written to disk at
	// startup when the files are missing.
	CredentialsJSON   string `json:"-" env:"NOVACAL_CALENDAR_CREDENTIALS_JSON"`
	TokenJSON         string `json:"-" env:"NOVACAL_CALENDAR_TOKEN_JSON"`
	HolidayCalendarID string `json:"holiday_calendar_id" env:"NOVACAL_CALENDAR_HOLIDAY_CALENDAR_ID"`
	// UTCOffset anchors day boundaries for range queries, e.g. "+07:00".
	UTCOffset string `json:"utc_offset" env:"NOVACAL_CALENDAR_UTC_OFFSET"`
}

type StorageConfig struct {
	DatabasePath string `json:"database_path" env:"NOVACAL_STORAGE_DATABASE_PATH"`
}

type DigestConfig struct {
	Enabled bool `json:"enabled" env:"NOVACAL_DIGEST_ENABLED"`
	// Cron is a standard five-field cron expression in local time.
	Cron string `json:"cron" env:"NOVACAL_DIGEST_CRON"`
}

func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Model:             "gemini-2.5-flash",
			Temperature:       0.3,
			MaxTokens:         8192,
			MaxToolIterations: 10,
		},
		Provider: ProviderConfig{
			APIBase: "https://generativelanguage.googleapis.com/v1beta/openai",
		},
		Calendar: CalendarConfig{
			CredentialsFile:   "credentials.json",
			TokenFile:         "token.json",
			HolidayCalendarID: "id.indonesian#holiday@group.v.calendar.google.com",
			UTCOffset:         "+07:00",
		},
		Storage: StorageConfig{
			DatabasePath: "novacal_memory.db",
		},
		Digest: DigestConfig{
			Enabled: false,
			Cron:    "0 7 * * *",
		},
	}
}

// LoadConfig reads the JSON config at path (missing file is fine, defaults
// apply) and then overlays environment variables.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0600)
}

// MaterializeCredentialFiles writes the calendar credential and token files
// from their env-provided JSON when the files do not already exist on disk.
// A missing env value is tolerated as long as the file is present.
func (c *Config) MaterializeCredentialFiles() error {
	pairs := []struct {
		path string
		raw  string
		name string
	}{
		{c.Calendar.CredentialsFile, c.Calendar.CredentialsJSON, "credentials"},
		{c.Calendar.TokenFile, c.Calendar.TokenJSON, "token"},
	}

	for _, p := range pairs {
		if p.path == "" {
			continue
		}
		if _, err := os.Stat(p.path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s file: %w", p.name, err)
		}
		if p.raw == "" {
			continue
		}
		if err := os.WriteFile(p.path, []byte(p.raw), 0600); err != nil {
			return fmt.Errorf("write %s file: %w", p.name, err)
		}
	}

	return nil
}

// OwnerRoute returns the transport used to reach the owner for alerts and
// digests: the configured owner channel, or the first configured transport.
func (c *Config) OwnerRoute() string {
	if c.Agent.OwnerChannel != "" {
		return c.Agent.OwnerChannel
	}
	if c.Channels.Telegram.Token != "" {
		return "telegram"
	}
	if c.Channels.Discord.Token != "" {
		return "discord"
	}
	return "telegram"
}

// Validate checks the settings the daemon cannot run without.
func (c *Config) Validate() error {
	if c.Agent.OwnerID == "" {
		return fmt.Errorf("agent.owner_id is required")
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required")
	}
	return nil
}
