package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/moxibot/moxi-yt-bot/internal/config"
	"github.com/moxibot/moxi-yt-bot/internal/contextkeys"
	"github.com/moxibot/moxi-yt-bot/internal/extractor"
	"github.com/moxibot/moxi-yt-bot/internal/limits"
	"github.com/moxibot/moxi-yt-bot/internal/messages"
	"github.com/moxibot/moxi-yt-bot/internal/scheduler"
	"github.com/moxibot/moxi-yt-bot/types"
)

type Handlers struct {
	cfg      *config.Config
	sessions types.SessionStore
	users    types.UserStore
	gate     *Gate
	ext      extractor.Extractor
	guard    limits.Guard
	sched    *scheduler.Scheduler
}

func NewHandlers(
	cfg *config.Config,
	sessions types.SessionStore,
	users types.UserStore,
	gate *Gate,
	ext extractor.Extractor,
	guard limits.Guard,
	sched *scheduler.Scheduler,
) *Handlers {
	return &Handlers{
		cfg:      cfg,
		sessions: sessions,
		users:    users,
		gate:     gate,
		ext:      ext,
		guard:    guard,
		sched:    sched,
	}
}

func (bh *Handlers) MainHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _ := contextkeys.GetChatID(ctx)
	messageType, _ := contextkeys.GetMessageType(ctx)

	switch messageType {
	case contextkeys.MessageTypeCommand:
		bh.HandleCommand(ctx, b, update)
	case contextkeys.MessageTypeText:
		bh.HandleText(ctx, b, update)
	case contextkeys.MessageTypeClickButton:
		bh.HandleClickButton(ctx, b, update)
	default:
		if chatID != 0 {
			_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:    chatID,
				Text:      messages.LinkHint(),
				ParseMode: messages.ParseModeHTML,
			})
		}
	}
}

func (bh *Handlers) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		log.Printf("Error answering callback %s: %v", callbackID, err)
	}
}

func callbackMessage(update *models.Update) *models.Message {
	if update == nil || update.CallbackQuery == nil {
		return nil
	}
	return update.CallbackQuery.Message.Message
}

// splitCallbackData separates a payload like "type_audio" or "q_720" into
// its action and value.
func splitCallbackData(data string) (action, value string) {
	data = strings.TrimSpace(data)
	action, value, ok := strings.Cut(data, "_")
	if !ok {
		return data, ""
	}
	return action, value
}
