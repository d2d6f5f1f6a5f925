// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/marsadembi/portfolio/internal/chat"
	"github.com/marsadembi/portfolio/internal/email"
)

// DefaultEnvFile is read when present. Variables already set in the
// environment take precedence over the file.
const DefaultEnvFile = ".env"

// Config holds server configuration.
type Config struct {
	Port       int
	DevMode    bool
	BaseURL    string // e.g. http://localhost:8080
	SessionKey string // signs the theme cookie
	OwnerEmail string // receives new-comment notifications
	Location   *time.Location

	// CommentsPerMinute limits comment posts per client IP. 0 disables it.
	CommentsPerMinute int

	SMTP email.SMTPConfig

	Chat        chat.UpstreamConfig // used only when Chat.BaseURL is set
	ChatTimeout time.Duration
}

// Load reads envFile (or DefaultEnvFile when empty) into the process
// environment and then builds a Config from it. A missing default file is
// not an error; a missing explicit file is.
func Load(envFile string) (Config, error) {
	path := envFile
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return FromEnv()
}

// FromEnv creates a Config from PF_* environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		DevMode:    os.Getenv("PF_DEV_MODE") == "true",
		BaseURL:    envOrDefault("PF_BASE_URL", "http://localhost:8080"),
		SessionKey: os.Getenv("PF_SESSION_KEY"),
		OwnerEmail: os.Getenv("PF_OWNER_EMAIL"),
		SMTP: email.SMTPConfig{
			Host: os.Getenv("PF_SMTP_HOST"),
			Port: envOrDefault("PF_SMTP_PORT", "587"),
			User: os.Getenv("PF_SMTP_USER"),
			Pass: os.Getenv("PF_SMTP_PASS"),
			From: os.Getenv("PF_SMTP_FROM"),
		},
		Chat: chat.UpstreamConfig{
			BaseURL:      os.Getenv("PF_CHAT_UPSTREAM_URL"),
			APIKey:       os.Getenv("PF_CHAT_API_KEY"),
			Model:        os.Getenv("PF_CHAT_MODEL"),
			SystemPrompt: os.Getenv("PF_CHAT_SYSTEM_PROMPT"),
		},
	}

	port, err := strconv.Atoi(envOrDefault("PF_PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PF_PORT %q", os.Getenv("PF_PORT"))
	}
	cfg.Port = port

	timeout, err := time.ParseDuration(envOrDefault("PF_CHAT_TIMEOUT", chat.DefaultTimeout.String()))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("invalid PF_CHAT_TIMEOUT %q", os.Getenv("PF_CHAT_TIMEOUT"))
	}
	cfg.ChatTimeout = timeout

	perMinute, err := strconv.Atoi(envOrDefault("PF_COMMENTS_PER_MINUTE", "5"))
	if err != nil || perMinute < 0 {
		return Config{}, fmt.Errorf("invalid PF_COMMENTS_PER_MINUTE %q", os.Getenv("PF_COMMENTS_PER_MINUTE"))
	}
	cfg.CommentsPerMinute = perMinute

	loc, err := time.LoadLocation(envOrDefault("PF_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PF_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

// UpstreamEnabled reports whether chat goes to an upstream API instead of Echo.
func (c Config) UpstreamEnabled() bool {
	return c.Chat.BaseURL != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
