package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/moxibot/moxi-yt-bot/internal/contextkeys"
	"github.com/moxibot/moxi-yt-bot/internal/messages"
)

func (bh *Handlers) HandleCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	userID, _ := contextkeys.GetUserID(ctx)
	chatID, _ := contextkeys.GetChatID(ctx)

	fields := strings.Fields(strings.TrimSpace(update.Message.Text))
	if len(fields) == 0 {
		return
	}
	cmd := fields[0]
	if strings.Contains(cmd, "@") {
		cmd = strings.SplitN(cmd, "@", 2)[0]
	}

	switch cmd {
	case "/start":
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.StartWelcome(bh.cfg.BotName),
			ParseMode: messages.ParseModeHTML,
		})
	case "/help":
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.Help(),
			ParseMode: messages.ParseModeHTML,
		})
	case "/stats":
		if !bh.isOwner(userID) {
			return
		}
		count, err := bh.users.Count()
		text := messages.StatsLine(count)
		if err != nil {
			log.Printf("Error counting users: %v", err)
			text = messages.StatsUnavailable()
		}
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      text,
			ParseMode: messages.ParseModeHTML,
		})
	case "/broadcast":
		if !bh.isOwner(userID) {
			return
		}
		bh.handleBroadcast(ctx, b, chatID, strings.Join(fields[1:], " "))
	default:
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorUnknownCommand(),
			ParseMode: messages.ParseModeHTML,
		})
	}
}

func (bh *Handlers) isOwner(userID int64) bool {
	return bh.cfg.OwnerID != 0 && userID == bh.cfg.OwnerID
}

func (bh *Handlers) handleBroadcast(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.BroadcastUsage(),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}

	ids, err := bh.users.ListIDs()
	if err != nil {
		log.Printf("Error listing users for broadcast: %v", err)
	}

	sent := 0
	for _, id := range ids {
		if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: id,
			Text:   text,
		}); err == nil {
			sent++
		}
		// Dumb pacing to stay under the API flood limit.
		time.Sleep(50 * time.Millisecond)
	}

	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      messages.BroadcastDone(sent, len(ids)),
		ParseMode: messages.ParseModeHTML,
	})
}
