package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"nft_tracker/internal/domain/service/changes"
)

type messageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

type Telegram struct {
	bot    messageSender
	chatID int64
}

func NewTelegram(bot messageSender, chatID int64) *Telegram {
	return &Telegram{
		bot:    bot,
		chatID: chatID,
	}
}

func (t *Telegram) Name() string {
	return ChannelTelegram
}

func (t *Telegram) Notify(ctx context.Context, report changes.Report) error {
	msg := tu.Message(tu.ID(t.chatID), HTML(report)).
		WithParseMode(telego.ModeHTML)

	if _, err := t.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain message to the notification chat.
func (t *Telegram) SendText(ctx context.Context, text string) error {
	_, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(t.chatID), text))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
