package handlers

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/moxibot/moxi-yt-bot/internal/contextkeys"
	"github.com/moxibot/moxi-yt-bot/internal/formats"
	"github.com/moxibot/moxi-yt-bot/internal/messages"
	"github.com/moxibot/moxi-yt-bot/internal/utils"
)

var linkRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:youtube\.com|youtu\.be)/\S+`)

// extractLink finds the first recognized video link in a message text and
// normalizes it to carry a scheme.
func extractLink(text string) (string, bool) {
	match := linkRe.FindString(text)
	if match == "" {
		return "", false
	}
	if !strings.HasPrefix(strings.ToLower(match), "http") {
		match = "https://" + match
	}
	return match, true
}

func (bh *Handlers) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	userID, _ := contextkeys.GetUserID(ctx)
	chatID, _ := contextkeys.GetChatID(ctx)

	url, ok := extractLink(update.Message.Text)
	if !ok {
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.LinkHint(),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}

	if !bh.gate.MustJoin(ctx, userID) {
		bh.sendJoinPrompt(ctx, b, chatID)
		return
	}

	if _, err := bh.sessions.Begin(userID, chatID, url); err != nil {
		return
	}

	keyboard := utils.BuildInlineKeyboard(formats.TypeButtons(), 2)
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        messages.SelectType(),
		ReplyMarkup: &keyboard,
	})
}

func (bh *Handlers) sendJoinPrompt(ctx context.Context, b *bot.Bot, chatID int64) {
	keyboard := models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "✅ Join Channel", URL: bh.gate.JoinURL()}},
			{{Text: "✅ I Joined, Continue", CallbackData: "check_join"}},
		},
	}
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        messages.JoinRequired(bh.gate.Channel()),
		ReplyMarkup: &keyboard,
	})
}
