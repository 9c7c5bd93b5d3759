package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type fakeChatMemberAPI struct {
	member *models.ChatMember
	err    error
	calls  int
}

func (f *fakeChatMemberAPI) GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error) {
	f.calls++
	return f.member, f.err
}

func TestGateDisabledAlwaysPasses(t *testing.T) {
	api := &fakeChatMemberAPI{err: errors.New("must not be called")}
	g := NewGate("", api)

	for _, userID := range []int64{1, 42, 999999} {
		if !g.MustJoin(context.Background(), userID) {
			t.Errorf("disabled gate blocked user %d", userID)
		}
	}
	if api.calls != 0 {
		t.Errorf("disabled gate queried membership %d times", api.calls)
	}
}

func TestGateFailsClosedOnQueryError(t *testing.T) {
	g := NewGate("@somechannel", &fakeChatMemberAPI{err: errors.New("USER_NOT_PARTICIPANT")})

	if g.MustJoin(context.Background(), 42) {
		t.Error("gate must fail closed when the membership query errors")
	}
}

func TestGateBlocksKickedAndLeft(t *testing.T) {
	for _, memberType := range []models.ChatMemberType{models.ChatMemberTypeBanned, models.ChatMemberTypeLeft} {
		g := NewGate("@somechannel", &fakeChatMemberAPI{member: &models.ChatMember{Type: memberType}})
		if g.MustJoin(context.Background(), 42) {
			t.Errorf("gate passed member type %v", memberType)
		}
	}
}

func TestGatePassesMembers(t *testing.T) {
	memberTypes := []models.ChatMemberType{
		models.ChatMemberTypeOwner,
		models.ChatMemberTypeAdministrator,
		models.ChatMemberTypeMember,
		models.ChatMemberTypeRestricted,
	}
	for _, memberType := range memberTypes {
		g := NewGate("@somechannel", &fakeChatMemberAPI{member: &models.ChatMember{Type: memberType}})
		if !g.MustJoin(context.Background(), 42) {
			t.Errorf("gate blocked member type %v", memberType)
		}
	}
}

func TestGateJoinURL(t *testing.T) {
	g := NewGate("@somechannel", &fakeChatMemberAPI{})
	if got := g.JoinURL(); got != "https://t.me/somechannel" {
		t.Errorf("JoinURL() = %q", got)
	}
}
