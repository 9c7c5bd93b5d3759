package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/moxibot/moxi-yt-bot/internal/contextkeys"
	"github.com/moxibot/moxi-yt-bot/types"
)

type Middlewares struct {
	users types.UserStore
}

func NewMessageAnalyzer(users types.UserStore) *Middlewares {
	return &Middlewares{
		users: users,
	}
}

// CallbackAnswerer is the slice of the Telegram client used to dismiss a
// callback query the chain cannot process.
type CallbackAnswerer interface {
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// IdentifyUserMiddleware resolves the acting user and chat from the update,
// puts them into the context and records the user. The record is telemetry,
// a store failure never stops the flow.
func (m *Middlewares) IdentifyUserMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		ctx, ok := m.identify(ctx, b, update)
		if !ok {
			return
		}
		next(ctx, b, update)
	}
}

func (m *Middlewares) identify(ctx context.Context, api CallbackAnswerer, update *models.Update) (context.Context, bool) {
	var (
		userID   int64
		chatID   int64
		username string
	)

	switch {
	case update.Message != nil && update.Message.From != nil:
		userID = update.Message.From.ID
		username = update.Message.From.Username
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
		username = update.CallbackQuery.From.Username
		chatID = getChatIDFromMaybeInaccessibleMessage(update.CallbackQuery.Message)
		if chatID == 0 {
			// Dismiss the query anyway or the button spinner hangs.
			_, _ = api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
				CallbackQueryID: update.CallbackQuery.ID,
			})
			return ctx, false
		}
	default:
		return ctx, false
	}

	if userID == 0 || chatID == 0 {
		return ctx, false
	}

	if err := m.users.UpsertUser(userID, username); err != nil {
		log.Printf("Error upserting user %d: %v", userID, err)
	}

	ctx = contextkeys.WithUserID(ctx, userID)
	ctx = contextkeys.WithChatID(ctx, chatID)
	return ctx, true
}

func getChatIDFromMaybeInaccessibleMessage(m models.MaybeInaccessibleMessage) int64 {
	if m.Message != nil {
		return m.Message.Chat.ID
	}
	if m.InaccessibleMessage != nil {
		return m.InaccessibleMessage.Chat.ID
	}
	return 0
}

// AnalyzeMessageMiddleware classifies the update and stashes the type plus
// callback payload in the context.
func (m *Middlewares) AnalyzeMessageMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.CallbackQuery != nil && update.CallbackQuery.Data != "" {
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeClickButton)
			ctx = contextkeys.WithCallbackData(ctx, update.CallbackQuery.Data)
			next(ctx, b, update)
			return
		}

		msgType := contextkeys.MessageTypeUnknown
		if update.Message != nil && update.Message.Text != "" {
			if strings.HasPrefix(update.Message.Text, "/") {
				msgType = contextkeys.MessageTypeCommand
			} else {
				msgType = contextkeys.MessageTypeText
			}
		}

		next(contextkeys.WithMessageType(ctx, msgType), b, update)
	}
}
