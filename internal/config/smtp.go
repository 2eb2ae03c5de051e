package config

import "time"

type SMTP struct {
	Host       string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port       int           `env:"SMTP_PORT" envDefault:"587"`
	Sender     string        `env:"SMTP_SENDER" validate:"omitempty,email"`
	Password   string        `env:"SMTP_PASSWORD" json:"-"`
	Recipients string        `env:"SMTP_RECIPIENTS"` // comma separated
	Subject    string        `env:"SMTP_SUBJECT" envDefault:"New assets detected"`
	Timeout    time.Duration `env:"SMTP_TIMEOUT" envDefault:"15s"`
	Cooldown   time.Duration `env:"SMTP_COOLDOWN" envDefault:"1h"`
}

func (s SMTP) RecipientList() []string {
	return splitList(s.Recipients)
}

func (s SMTP) Ready() bool {
	return s.Sender != "" && s.Password != "" && len(s.RecipientList()) > 0
}
