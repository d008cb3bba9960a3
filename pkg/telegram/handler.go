package telegram

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type VisionService interface {
	DescribePhoto(ctx context.Context, chatID int64, messageID int, fileID string, automatic bool)
}

type ChatService interface {
	SendWelcome(ctx context.Context, chatID int64)
	SendHistory(ctx context.Context, chatID int64)
	SendVisionUsage(ctx context.Context, chatID int64, messageID int)
	ToggleAutoVision(ctx context.Context, chatID int64, messageID int, arg string)
}

type handler struct {
	visionService VisionService
	chatService   ChatService
}

func NewHandler(visionService VisionService, chatService ChatService) *handler {
	return &handler{
		visionService: visionService,
		chatService:   chatService,
	}
}

func (h *handler) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		slog.WarnContext(ctx, "Received unknown update type")
		return
	}

	switch {
	case isCommand(msg.Text):
		h.handleCommand(ctx, msg)

	case len(msg.Photo) > 0:
		// A photo captioned /vision is an explicit request and bypasses the
		// gate; any other photo is an automatic run and the service decides
		// whether to act on it.
		automatic := !isVisionCaption(msg.Caption)
		h.visionService.DescribePhoto(ctx, msg.Chat.ID, msg.MessageID, largestPhotoID(msg), automatic)

	default:
		slog.DebugContext(ctx, "Ignoring message without photo or command", "chatID", msg.Chat.ID)
	}
}

func (h *handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	fields := strings.Fields(msg.Text)
	cmd := strings.ToLower(strings.Split(fields[0], "@")[0])

	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "/start", "/help":
		h.chatService.SendWelcome(ctx, msg.Chat.ID)

	case "/autovision":
		h.chatService.ToggleAutoVision(ctx, msg.Chat.ID, msg.MessageID, arg)

	case "/history":
		h.chatService.SendHistory(ctx, msg.Chat.ID)

	case "/vision":
		fileID := commandPhotoID(msg)
		if fileID == "" {
			h.chatService.SendVisionUsage(ctx, msg.Chat.ID, msg.MessageID)
			return
		}
		h.visionService.DescribePhoto(ctx, msg.Chat.ID, msg.MessageID, fileID, false)

	default:
		slog.WarnContext(ctx, "Unhandled command", "cmd", cmd)
	}
}

func isCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

func isVisionCaption(caption string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(caption)), "/vision")
}

// commandPhotoID resolves the photo an explicit /vision command targets:
// the command message itself, or the message it replies to.
func commandPhotoID(msg *tgbotapi.Message) string {
	if len(msg.Photo) > 0 {
		return largestPhotoID(msg)
	}
	if msg.ReplyToMessage != nil && len(msg.ReplyToMessage.Photo) > 0 {
		return largestPhotoID(msg.ReplyToMessage)
	}
	return ""
}

// Telegram offers several resolutions per photo, smallest first.
func largestPhotoID(msg *tgbotapi.Message) string {
	return msg.Photo[len(msg.Photo)-1].FileID
}
