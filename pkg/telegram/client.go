package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ketvision/telegram-bot/pkg/domain"
	"github.com/ketvision/telegram-bot/pkg/logger"
)

type client struct {
	token     string
	bot       *tgbotapi.BotAPI
	updatesCh tgbotapi.UpdatesChannel
}

func NewClient(token string) (*client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot api instance: %w", err)
	}

	slog.Info("authorized on telegram", "account", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	return &client{
		token:     token,
		bot:       bot,
		updatesCh: bot.GetUpdatesChan(u),
	}, nil
}

func (c *client) GetUpdates() tgbotapi.UpdatesChannel {
	return c.updatesCh
}

// SendResponse delivers one response to the chat. A response carrying an
// error is turned into a single user-facing failure message; the underlying
// cause stays in the logs only.
func (c *client) SendResponse(ctx context.Context, response *domain.Response) {
	text := response.Text
	if response.Err != nil {
		slog.ErrorContext(ctx, "pipeline run failed", "chatID", response.ChatID, logger.Err(response.Err))
		text = domain.UserMessage(response.Err)
	}

	c.send(ctx, &domain.TextMessage{
		ChatID:           response.ChatID,
		ReplyToMessageID: response.ReplyToMessageID,
		Content:          text,
	})
}

func (c *client) StartTyping(ctx context.Context, chatID int64) {
	c.send(ctx, &domain.TypingMessage{ChatID: chatID})
}

func (c *client) send(ctx context.Context, message domain.Message) {
	if _, err := c.bot.Send(message.ToChatMessage()); err != nil {
		slog.ErrorContext(ctx, "sending message", logger.Err(err))
	}
}

// DownloadFile fetches the file behind a platform file ID and returns its
// raw bytes. An empty body is reported as an error, not as a zero-length
// download.
func (c *client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("getting file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(c.token), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.bot.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			slog.ErrorContext(ctx, "closing body", logger.Err(closeErr))
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty file body for file ID %q", fileID)
	}

	return data, nil
}
