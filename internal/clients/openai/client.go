package openai

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/entity/chat"
	"max.ks1230/finances-ai/internal/logger"
)

type config interface {
	ApiKey() string
	BaseURL() string
	Timeout() time.Duration
}

// Client is the chat-completion collaborator of the report generator.
type Client struct {
	client  *goopenai.Client
	timeout time.Duration
}

func New(config config) *Client {
	cfg := goopenai.DefaultConfig(config.ApiKey())
	if config.BaseURL() != "" {
		cfg.BaseURL = config.BaseURL()
	}
	return &Client{
		client:  goopenai.NewClientWithConfig(cfg),
		timeout: config.Timeout(),
	}
}

// Complete returns the text of every completion choice, in order.
func (c *Client) Complete(ctx context.Context, model string, messages []chat.Message) ([]string, error) {
	logger.Info("Complete - start", zap.String("model", model), zap.Int("messages", len(messages)))
	defer logger.Info("Complete - end")

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: toRequestMessages(messages),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create chat completion")
	}

	choices := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		choices = append(choices, choice.Message.Content)
	}
	logger.Info("completion received",
		zap.Int("choices", len(choices)),
		zap.Int("totalTokens", resp.Usage.TotalTokens))
	return choices, nil
}

func toRequestMessages(messages []chat.Message) []goopenai.ChatCompletionMessage {
	res := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		res = append(res, goopenai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return res
}
