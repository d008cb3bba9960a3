package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ketvision/telegram-bot/pkg/domain"
)

const (
	botVersion   = "0.4"
	historyLimit = 5
)

type ModeRepository interface {
	Enabled(chatID int64) bool
	Set(chatID int64, on bool)
}

type DescriptionLister interface {
	GetRecent(ctx context.Context, chatID int64, limit int) ([]domain.Description, error)
}

type chatService struct {
	modes        ModeRepository
	descriptions DescriptionLister
	model        string
	responseCh   chan<- domain.Response
}

func NewChatService(
	modes ModeRepository,
	descriptions DescriptionLister,
	model string,
	responseCh chan<- domain.Response,
) *chatService {
	return &chatService{
		modes:        modes,
		descriptions: descriptions,
		model:        model,
		responseCh:   responseCh,
	}
}

func (s *chatService) SendWelcome(ctx context.Context, chatID int64) {
	state := "disabled"
	if s.modes.Enabled(chatID) {
		state = "enabled"
	}

	text := fmt.Sprintf(
		"**Ket Vision** `%s`\n\n"+
			"I describe images sent to this chat.\n\n"+
			"**Commands:**\n"+
			"/vision — describe the photo in a message, or in the message you reply to\n"+
			"/autovision on|off — toggle automatic descriptions for this chat\n"+
			"/history — show the latest descriptions\n\n"+
			"AutoVision: `%s`\n"+
			"Model: `%s`",
		botVersion, state, s.model,
	)

	s.responseCh <- domain.Response{ChatID: chatID, Text: text}
}

// ToggleAutoVision flips the per-chat gate. Only "on" and "off" are
// accepted; anything else leaves the gate unchanged and reports usage.
func (s *chatService) ToggleAutoVision(ctx context.Context, chatID int64, messageID int, arg string) {
	switch strings.ToLower(arg) {
	case "on":
		s.modes.Set(chatID, true)
		s.responseCh <- domain.Response{
			ChatID: chatID,
			Text:   "Automatic descriptions are enabled. New photos in this chat will be described as they arrive.",
		}
	case "off":
		s.modes.Set(chatID, false)
		s.responseCh <- domain.Response{
			ChatID: chatID,
			Text:   "Automatic descriptions are disabled. Use /vision to describe a photo.",
		}
	default:
		s.responseCh <- domain.Response{
			ChatID:           chatID,
			ReplyToMessageID: messageID,
			Text:             "Usage: /autovision [on|off]",
		}
	}
}

func (s *chatService) SendVisionUsage(ctx context.Context, chatID int64, messageID int) {
	s.responseCh <- domain.Response{
		ChatID:           chatID,
		ReplyToMessageID: messageID,
		Text:             "Reply to a photo with /vision, or send a photo with /vision as the caption.",
	}
}

func (s *chatService) SendHistory(ctx context.Context, chatID int64) {
	descriptions, err := s.descriptions.GetRecent(ctx, chatID, historyLimit)
	if err != nil {
		s.responseCh <- domain.Response{ChatID: chatID, Err: fmt.Errorf("fetching description history: %w", err)}
		return
	}

	if len(descriptions) == 0 {
		s.responseCh <- domain.Response{ChatID: chatID, Text: "No descriptions yet."}
		return
	}

	var b strings.Builder
	b.WriteString("**Latest descriptions:**\n")
	for _, d := range descriptions {
		fmt.Fprintf(&b, "\n• %s — %s\n", d.CreatedAt.Format("2006-01-02 15:04"), d.Text)
	}

	for _, chunk := range domain.SplitText(b.String(), domain.TelegramMaxMessageLength) {
		s.responseCh <- domain.Response{ChatID: chatID, Text: chunk}
	}
}
