package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/sashabaranov/go-openai"
)

const visionMaxTokens = 1000

// client answers image questions through the OpenAI vision API. It exposes
// the same encode/answer contract as the local model: Encode produces the
// representation the API accepts (a base64 data URL), Answer runs the
// completion. Both are blocking and run inside the inference pool.
type client struct {
	ai    *openai.Client
	model string
}

func NewClient(token string) (*client, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	return &client{
		ai:    openai.NewClient(token),
		model: openai.GPT4o,
	}, nil
}

func (c *client) Model() string { return c.model }

func (c *client) Encode(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return "", fmt.Errorf("encoding image to jpeg: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (c *client) Answer(imageURL, prompt string) (string, error) {
	resp, err := c.ai.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
		MaxTokens: visionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no completion response from API")
	}

	return resp.Choices[0].Message.Content, nil
}
