package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/moxibot/moxi-yt-bot/internal/contextkeys"
	"github.com/moxibot/moxi-yt-bot/internal/formats"
	"github.com/moxibot/moxi-yt-bot/internal/messages"
	"github.com/moxibot/moxi-yt-bot/internal/utils"
	"github.com/moxibot/moxi-yt-bot/types"
)

func (bh *Handlers) HandleClickButton(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		return
	}
	data, _ := contextkeys.GetCallbackData(ctx)
	if data == "" {
		data = update.CallbackQuery.Data
	}
	data = strings.TrimSpace(data)

	switch {
	case data == "check_join":
		bh.handleCheckJoin(ctx, b, update)
	case strings.HasPrefix(data, "type_"):
		bh.handleTypeChoice(ctx, b, update, data)
	case strings.HasPrefix(data, "q_"):
		bh.handleQualityChoice(ctx, b, update, data)
	default:
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)
	}
}

// handleCheckJoin re-checks membership on request. It informs the user but
// performs no session transition either way.
func (bh *Handlers) handleCheckJoin(ctx context.Context, b *bot.Bot, update *models.Update) {
	userID, _ := contextkeys.GetUserID(ctx)
	msg := callbackMessage(update)

	if !bh.gate.MustJoin(ctx, userID) {
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, messages.JoinStillMissing(), true)
		return
	}

	bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)
	if msg != nil {
		_, _ = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      messages.JoinConfirmed(),
		})
	}
}

func (bh *Handlers) handleTypeChoice(ctx context.Context, b *bot.Bot, update *models.Update, data string) {
	userID, _ := contextkeys.GetUserID(ctx)
	msg := callbackMessage(update)
	if msg == nil {
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)
		return
	}

	_, value := splitCallbackData(data)
	mode := types.Mode(value)
	if mode != types.ModeAudio && mode != types.ModeVideo {
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)
		return
	}

	session, err := bh.sessions.SetMode(userID, mode)
	if err != nil {
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, messages.SessionExpired(), true)
		return
	}
	bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)

	_, _ = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      messages.FetchingQualities(),
	})

	info, err := bh.ext.Probe(ctx, session.URL, bh.cfg.CookiesPath())
	if err != nil {
		_, _ = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      messages.ErrorFetchInfo(err),
			ParseMode: messages.ParseModeHTML,
		})
		bh.sessions.Delete(userID)
		return
	}
	_, _ = bh.sessions.SetTitle(userID, info.Title)

	keyboard := utils.BuildInlineKeyboard(formats.QualityButtons(mode), 2)
	_, _ = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        messages.ChooseQuality(),
		ReplyMarkup: &keyboard,
	})
}

func (bh *Handlers) handleQualityChoice(ctx context.Context, b *bot.Bot, update *models.Update, data string) {
	userID, _ := contextkeys.GetUserID(ctx)
	msg := callbackMessage(update)
	if msg == nil {
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)
		return
	}

	_, quality := splitCallbackData(data)
	// A missing session and a session without a chosen mode both read as
	// expired to the user.
	session, err := bh.sessions.SetQuality(userID, quality)
	if err != nil {
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, messages.SessionExpired(), true)
		return
	}
	bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)

	statusMsg, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      messages.DownloadStarting(),
	})
	statusMsgID := msg.ID
	if err == nil && statusMsg != nil {
		statusMsgID = statusMsg.ID
	}

	bh.runDownload(ctx, b, msg.Chat.ID, statusMsgID, session)
	bh.sessions.Delete(userID)
}
