package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"nft_tracker/internal/domain"
	"nft_tracker/internal/domain/service/changes"
	"nft_tracker/pkg/contextx"
	"nft_tracker/pkg/errcodes"
	"nft_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	ChannelAudio    = "audio"
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
)

type Notifier interface {
	Notify(ctx context.Context, report changes.Report) error
}

// Channel is a Notifier with a stable name used in logs and metrics.
type Channel interface {
	Notifier
	Name() string
}

// ResultObserver is told the outcome of every channel delivery.
type ResultObserver func(channel string, err error)

// Multi fans a report out to every channel. A failing channel never stops the
// others; all failures are returned joined.
type Multi struct {
	channels []Channel
	observer ResultObserver
}

func NewMulti(channels ...Channel) *Multi {
	return &Multi{channels: channels}
}

func (m *Multi) WithObserver(observer ResultObserver) *Multi {
	m.observer = observer
	return m
}

func (m *Multi) Channels() []string {
	names := make([]string, 0, len(m.channels))
	for _, ch := range m.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Notify delivers flagged reports only.
func (m *Multi) Notify(ctx context.Context, report changes.Report) error {
	if !report.Flagged {
		return nil
	}

	var errs []error

	for _, ch := range m.channels {
		err := ch.Notify(ctx, report)
		if m.observer != nil {
			m.observer(ch.Name(), err)
		}

		if err != nil {
			logger(ctx).Warn("notification failed", slog.String(logx.FieldChannel, ch.Name()), logx.Error(err))
			errs = append(errs, domain.WrapError(err, errcodes.NotificationFailed, fmt.Sprintf("%s notifier", ch.Name())))
			continue
		}

		logger(ctx).Debug("notification sent", slog.String(logx.FieldChannel, ch.Name()))
	}

	return errors.Join(errs...)
}
