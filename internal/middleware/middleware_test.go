package middleware

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/moxibot/moxi-yt-bot/internal/contextkeys"
	"github.com/moxibot/moxi-yt-bot/store"
)

type recordingAnswerer struct {
	answered []string
}

func (r *recordingAnswerer) AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	r.answered = append(r.answered, params.CallbackQueryID)
	return true, nil
}

func TestIdentifyResolvesMessageSender(t *testing.T) {
	m := NewMessageAnalyzer(store.NoopUserStore{})
	api := &recordingAnswerer{}
	update := &models.Update{Message: &models.Message{
		From: &models.User{ID: 42, Username: "bea"},
		Chat: models.Chat{ID: 100},
		Text: "hi",
	}}

	ctx, ok := m.identify(context.Background(), api, update)
	if !ok {
		t.Fatal("message update must pass through")
	}
	if userID, _ := contextkeys.GetUserID(ctx); userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
	if chatID, _ := contextkeys.GetChatID(ctx); chatID != 100 {
		t.Errorf("chat id = %d, want 100", chatID)
	}
	if len(api.answered) != 0 {
		t.Errorf("plain messages must not answer a callback, got %v", api.answered)
	}
}

func TestIdentifyDismissesCallbackOnInaccessibleMessage(t *testing.T) {
	m := NewMessageAnalyzer(store.NoopUserStore{})
	api := &recordingAnswerer{}
	update := &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "cb1",
		From: models.User{ID: 42},
	}}

	if _, ok := m.identify(context.Background(), api, update); ok {
		t.Error("callback without a reachable chat must stop the chain")
	}
	if len(api.answered) != 1 || api.answered[0] != "cb1" {
		t.Errorf("callback must be answered so the button spinner clears, got %v", api.answered)
	}
}
