package oracle

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/dyike/MarketMindGo/config"
)

// chatOracle adapts an eino chat model to the Oracle interface.
type chatOracle struct {
	chatModel model.BaseChatModel
}

// NewChatOracle builds the live oracle for the configured provider.
func NewChatOracle(ctx context.Context, cfg *config.Config) (Oracle, error) {
	switch cfg.LLMProvider {
	case "openai":
		maxTokens := 1024
		baseURL := cfg.BackendURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   baseURL,
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.Model,
			MaxTokens: &maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create OpenAI model: %w", err)
		}
		return &chatOracle{chatModel: chatModel}, nil
	case "deepseek":
		chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     cfg.Model,
			MaxTokens: 1024,
		})
		if err != nil {
			return nil, fmt.Errorf("create DeepSeek model: %w", err)
		}
		return &chatOracle{chatModel: chatModel}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func (o *chatOracle) Generate(ctx context.Context, messages []*schema.Message, temperature float32) (string, error) {
	msg, err := o.chatModel.Generate(ctx, messages, model.WithTemperature(temperature))
	if err != nil {
		return "", fmt.Errorf("chat model generate: %w", err)
	}
	return msg.Content, nil
}
