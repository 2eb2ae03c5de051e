package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"nft_tracker/internal/domain/service/changes"
)

type Config struct {
	App        App
	Storefront Storefront
	Tracker    Tracker
	Table      Table
	Audio      Audio
	SMTP       SMTP
	Bot        Bot
	Servers    Servers
	Secrets    Secrets
}

type App struct {
	Name     string `env:"APP_NAME" envDefault:"nft-tracker"`
	Version  string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"` // empty logs to stderr
}

type Tracker struct {
	Policy           string        `env:"NOTIFY_POLICY" envDefault:"tier-change" validate:"oneof=tier-change new-asset"`
	Interval         time.Duration `env:"POLL_INTERVAL" envDefault:"30s" validate:"gt=0"`
	NotifyFirstCycle bool          `env:"NOTIFY_FIRST_CYCLE" envDefault:"false"`
}

func (t Tracker) NotifyPolicy() changes.Policy {
	return changes.Policy(t.Policy)
}

type Table struct {
	ClearScreen    bool   `env:"TABLE_CLEAR_SCREEN" envDefault:"true"`
	SecondaryLabel string `env:"TABLE_SECONDARY_LABEL" envDefault:"MCG"`
	NoColor        bool   `env:"NO_COLOR" envDefault:"false"`
}

type Audio struct {
	Enabled *bool  `env:"AUDIO_ENABLED"` // unset follows the policy
	Command string `env:"AUDIO_COMMAND"` // e.g. "paplay /usr/share/sounds/freedesktop/stereo/bell.oga"
}

// EnabledFor reports whether the bell rings under policy. Without an explicit
// AUDIO_ENABLED it rings for tier changes only; new assets go to email.
func (a Audio) EnabledFor(policy changes.Policy) bool {
	if a.Enabled != nil {
		return *a.Enabled
	}
	return policy == changes.PolicyTierChange
}

type Bot struct {
	Token   string `env:"BOT_TOKEN" json:"-"`
	ChatID  int64  `env:"BOT_CHAT_ID"`
	AdminID int64  `env:"BOT_ADMIN_ID"`
}

func (b Bot) Enabled() bool {
	return b.Token != "" && b.ChatID != 0
}

type Servers struct {
	HTTPAddr        string        `env:"HTTP_ADDR"`
	MetricsAddr     string        `env:"METRICS_ADDR"`
	ProbeAddr       string        `env:"PROBE_ADDR"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type Secrets struct {
	Name   string `env:"SECRETS_NAME"`
	Region string `env:"AWS_REGION" envDefault:"us-east-1"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks field constraints and the settings each notification policy
// depends on. Credentials may still be empty when a secret store supplies them.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	if c.Tracker.NotifyPolicy() == changes.PolicyNewAsset && c.Secrets.Name == "" && !c.SMTP.Ready() {
		return fmt.Errorf("policy %s needs SMTP_SENDER, SMTP_PASSWORD and SMTP_RECIPIENTS", changes.PolicyNewAsset)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
