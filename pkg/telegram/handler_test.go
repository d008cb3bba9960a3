package telegram

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type visionCall struct {
	chatID    int64
	messageID int
	fileID    string
	automatic bool
}

type fakeVisionService struct {
	calls []visionCall
}

func (f *fakeVisionService) DescribePhoto(_ context.Context, chatID int64, messageID int, fileID string, automatic bool) {
	f.calls = append(f.calls, visionCall{chatID, messageID, fileID, automatic})
}

type fakeChatService struct {
	welcomes     int
	histories    int
	visionUsages int
	toggleArgs   []string
}

func (f *fakeChatService) SendWelcome(_ context.Context, _ int64) { f.welcomes++ }

func (f *fakeChatService) SendHistory(_ context.Context, _ int64) { f.histories++ }

func (f *fakeChatService) SendVisionUsage(_ context.Context, _ int64, _ int) { f.visionUsages++ }
func (f *fakeChatService) ToggleAutoVision(_ context.Context, _ int64, _ int, arg string) {
	f.toggleArgs = append(f.toggleArgs, arg)
}

func photoMessage(chatID int64, messageID int, fileID string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: messageID,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Photo: []tgbotapi.PhotoSize{
			{FileID: "thumb"},
			{FileID: fileID},
		},
	}
}

func textMessage(chatID int64, messageID int, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: messageID,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}
}

func handleUpdate(t *testing.T, msg *tgbotapi.Message) (*fakeVisionService, *fakeChatService) {
	t.Helper()

	vision := &fakeVisionService{}
	chat := &fakeChatService{}
	NewHandler(vision, chat).HandleUpdate(context.Background(), &tgbotapi.Update{Message: msg})
	return vision, chat
}

func TestHandleUpdatePhotoIsAutomatic(t *testing.T) {
	vision, _ := handleUpdate(t, photoMessage(1, 10, "big"))

	if len(vision.calls) != 1 {
		t.Fatalf("got %d vision calls, want 1", len(vision.calls))
	}
	want := visionCall{chatID: 1, messageID: 10, fileID: "big", automatic: true}
	if vision.calls[0] != want {
		t.Errorf("got %+v, want %+v", vision.calls[0], want)
	}
}

func TestHandleUpdatePhotoWithVisionCaptionBypassesGate(t *testing.T) {
	msg := photoMessage(1, 10, "big")
	msg.Caption = "/vision"

	vision, _ := handleUpdate(t, msg)

	if len(vision.calls) != 1 || vision.calls[0].automatic {
		t.Errorf("captioned photo should be an explicit run, got %+v", vision.calls)
	}
}

func TestHandleUpdateVisionCommandOnReply(t *testing.T) {
	msg := textMessage(1, 11, "/vision")
	msg.ReplyToMessage = photoMessage(1, 10, "big")

	vision, chat := handleUpdate(t, msg)

	if len(vision.calls) != 1 {
		t.Fatalf("got %d vision calls, want 1", len(vision.calls))
	}
	call := vision.calls[0]
	if call.fileID != "big" || call.automatic || call.messageID != 11 {
		t.Errorf("unexpected vision call: %+v", call)
	}
	if chat.visionUsages != 0 {
		t.Error("usage reply sent for a valid /vision command")
	}
}

func TestHandleUpdateVisionCommandWithoutPhoto(t *testing.T) {
	msg := textMessage(1, 11, "/vision")
	msg.ReplyToMessage = textMessage(1, 10, "just text")

	vision, chat := handleUpdate(t, msg)

	if len(vision.calls) != 0 {
		t.Error("download attempted for a /vision command with no photo")
	}
	if chat.visionUsages != 1 {
		t.Errorf("got %d usage replies, want 1", chat.visionUsages)
	}
}

func TestHandleUpdateCommands(t *testing.T) {
	tests := []struct {
		text  string
		check func(t *testing.T, chat *fakeChatService)
	}{
		{"/start", func(t *testing.T, chat *fakeChatService) {
			if chat.welcomes != 1 {
				t.Error("welcome not sent")
			}
		}},
		{"/help", func(t *testing.T, chat *fakeChatService) {
			if chat.welcomes != 1 {
				t.Error("welcome not sent")
			}
		}},
		{"/start@ketvision_bot", func(t *testing.T, chat *fakeChatService) {
			if chat.welcomes != 1 {
				t.Error("welcome not sent for command with bot mention")
			}
		}},
		{"/history", func(t *testing.T, chat *fakeChatService) {
			if chat.histories != 1 {
				t.Error("history not sent")
			}
		}},
		{"/autovision on", func(t *testing.T, chat *fakeChatService) {
			if len(chat.toggleArgs) != 1 || chat.toggleArgs[0] != "on" {
				t.Errorf("got toggle args %v, want [on]", chat.toggleArgs)
			}
		}},
		{"/autovision", func(t *testing.T, chat *fakeChatService) {
			if len(chat.toggleArgs) != 1 || chat.toggleArgs[0] != "" {
				t.Errorf("got toggle args %v, want one empty arg", chat.toggleArgs)
			}
		}},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			_, chat := handleUpdate(t, textMessage(1, 10, test.text))
			test.check(t, chat)
		})
	}
}

func TestHandleUpdateIgnoresPlainText(t *testing.T) {
	vision, chat := handleUpdate(t, textMessage(1, 10, "hello there"))

	if len(vision.calls) != 0 || chat.welcomes+chat.histories+chat.visionUsages != 0 {
		t.Error("plain text message triggered a handler")
	}
}
