package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/patrickmn/go-cache"
	"github.com/wneessen/go-mail"

	"nft_tracker/internal/config"
	"nft_tracker/internal/domain/service/changes"
	"nft_tracker/pkg/logx"
)

type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Email mails the report over SMTP with mandatory STARTTLS. Under the new-asset
// policy names mailed within the cooldown are left out of later mails; tier
// transitions are always mailed.
type Email struct {
	sender     mailSender
	from       string
	recipients []string
	subject    string
	mailed     *cache.Cache
}

func NewEmail(cfg config.SMTP) (*Email, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Sender),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("mail.NewClient: %w", err)
	}

	return NewEmailWithSender(cfg, client), nil
}

func NewEmailWithSender(cfg config.SMTP, sender mailSender) *Email {
	e := &Email{
		sender:     sender,
		from:       cfg.Sender,
		recipients: cfg.RecipientList(),
		subject:    cfg.Subject,
	}

	if cfg.Cooldown > 0 {
		e.mailed = cache.New(cfg.Cooldown, 2*cfg.Cooldown)
	}

	return e
}

func (e *Email) Name() string {
	return ChannelEmail
}

func (e *Email) Notify(ctx context.Context, report changes.Report) error {
	names := Subjects(report)
	if report.Policy == changes.PolicyNewAsset {
		names = e.fresh(names)
	}

	if len(names) == 0 {
		logger(ctx).Debug("email skipped, all assets within cooldown")
		return nil
	}

	msg, err := e.message(PlainText(report, names))
	if err != nil {
		return err
	}

	if err := e.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	if e.mailed != nil && report.Policy == changes.PolicyNewAsset {
		for _, name := range names {
			e.mailed.SetDefault(name, struct{}{})
		}
	}

	logger(ctx).Info("email sent", slog.Any(logx.FieldAssets, names))

	return nil
}

func (e *Email) message(body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(e.from); err != nil {
		return nil, fmt.Errorf("msg.From: %w", err)
	}
	if err := msg.To(e.recipients...); err != nil {
		return nil, fmt.Errorf("msg.To: %w", err)
	}

	msg.Subject(e.subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}

func (e *Email) fresh(names []string) []string {
	if e.mailed == nil {
		return names
	}

	res := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := e.mailed.Get(name); !ok {
			res = append(res, name)
		}
	}
	return res
}
