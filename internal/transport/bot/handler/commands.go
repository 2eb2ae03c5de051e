package handler

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"nft_tracker/internal/domain"
	"nft_tracker/internal/transport/bot/view"
	"nft_tracker/pkg/errcodes"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.Status(h.tracker.Status()))
}

func (h *Handler) OnAssets(ctx *th.Context, msg telego.Message) error {
	state, err := h.snapshots.Latest(ctx)
	if domain.HasCode(err, errcodes.SnapshotNotReady) {
		return h.sendHTML(ctx, msg.Chat.ID, view.NoSnapshot)
	}
	if err != nil {
		return err
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Assets(state))
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}
