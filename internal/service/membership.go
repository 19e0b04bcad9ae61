package service

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type chatMemberClient interface {
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
}

// MembershipService gates earning actions on membership in all required
// channels. A failed lookup counts as "not a member".
type MembershipService struct {
	client   chatMemberClient
	channels []string
}

func NewMembershipService(client chatMemberClient, channels []string) *MembershipService {
	return &MembershipService{client: client, channels: channels}
}

func (s *MembershipService) Channels() []string {
	return s.channels
}

// IsMember reports whether the user belongs to every required channel.
func (s *MembershipService) IsMember(ctx context.Context, telegramID int64) bool {
	for _, channel := range s.channels {
		if !s.isChannelMember(ctx, telegramID, channel) {
			return false
		}
	}
	return true
}

func (s *MembershipService) isChannelMember(ctx context.Context, telegramID int64, channel string) bool {
	member, err := s.client.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: "@" + channel,
		UserID: telegramID,
	})
	if err != nil || member == nil {
		slog.Warn("membership lookup failed", "channel", channel, "user_id", telegramID, "error", err)
		return false
	}

	switch {
	case member.Member != nil:
		return true
	case member.Administrator != nil:
		return true
	case member.Owner != nil:
		return true
	}
	return false
}
