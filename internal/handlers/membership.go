package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ChatMemberAPI is the slice of the Telegram client the gate needs.
type ChatMemberAPI interface {
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
}

// Gate restricts bot use to members of a configured channel. With no
// channel configured the gate is disabled. A failed membership query
// blocks access, uncertainty never grants it.
type Gate struct {
	channel string
	api     ChatMemberAPI
}

func NewGate(channel string, api ChatMemberAPI) *Gate {
	return &Gate{
		channel: strings.TrimSpace(channel),
		api:     api,
	}
}

func (g *Gate) Enabled() bool {
	return g.channel != ""
}

func (g *Gate) Channel() string {
	return g.channel
}

// JoinURL is the public link of the gated channel.
func (g *Gate) JoinURL() string {
	return "https://t.me/" + strings.TrimPrefix(g.channel, "@")
}

func (g *Gate) MustJoin(ctx context.Context, userID int64) bool {
	if !g.Enabled() {
		return true
	}
	member, err := g.api.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: g.channel,
		UserID: userID,
	})
	if err != nil || member == nil {
		return false
	}
	switch member.Type {
	case models.ChatMemberTypeBanned, models.ChatMemberTypeLeft:
		return false
	default:
		return true
	}
}
