package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type stubChatMemberClient struct {
	members map[string]*models.ChatMember
	err     error
	queried []string
}

func (s *stubChatMemberClient) GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error) {
	chat := params.ChatID.(string)
	s.queried = append(s.queried, chat)
	if s.err != nil {
		return nil, s.err
	}
	return s.members[chat], nil
}

func memberOf() *models.ChatMember {
	return &models.ChatMember{Member: &models.ChatMemberMember{}}
}

func TestMembershipService_IsMemberAllChannels(t *testing.T) {
	client := &stubChatMemberClient{members: map[string]*models.ChatMember{
		"@channel_one": memberOf(),
		"@channel_two": memberOf(),
	}}
	svc := NewMembershipService(client, []string{"channel_one", "channel_two"})

	if !svc.IsMember(context.Background(), 1) {
		t.Fatalf("expected member of both channels")
	}
}

func TestMembershipService_NotMemberOfOne(t *testing.T) {
	client := &stubChatMemberClient{members: map[string]*models.ChatMember{
		"@channel_one": memberOf(),
		"@channel_two": {Left: &models.ChatMemberLeft{}},
	}}
	svc := NewMembershipService(client, []string{"channel_one", "channel_two"})

	if svc.IsMember(context.Background(), 1) {
		t.Fatalf("expected gate to fail when one channel is missing")
	}
}

func TestMembershipService_AdminAndOwnerCount(t *testing.T) {
	client := &stubChatMemberClient{members: map[string]*models.ChatMember{
		"@channel_one": {Administrator: &models.ChatMemberAdministrator{}},
		"@channel_two": {Owner: &models.ChatMemberOwner{}},
	}}
	svc := NewMembershipService(client, []string{"channel_one", "channel_two"})

	if !svc.IsMember(context.Background(), 1) {
		t.Fatalf("admins and owners must pass the gate")
	}
}

func TestMembershipService_LookupErrorFailsClosed(t *testing.T) {
	client := &stubChatMemberClient{err: errors.New("chat not found")}
	svc := NewMembershipService(client, []string{"channel_one"})

	if svc.IsMember(context.Background(), 1) {
		t.Fatalf("a failed lookup must count as not a member")
	}
}

func TestMembershipService_NoChannelsConfigured(t *testing.T) {
	client := &stubChatMemberClient{}
	svc := NewMembershipService(client, nil)

	if !svc.IsMember(context.Background(), 1) {
		t.Fatalf("no required channels means everyone passes")
	}
	if len(client.queried) != 0 {
		t.Fatalf("no lookups expected, got %v", client.queried)
	}
}
