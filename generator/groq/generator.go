package groq

import (
	"context"

	"github.com/recapkit/recap/generator"
	openai "github.com/sashabaranov/go-openai"
)

// Groq exposes an OpenAI-compatible chat completion API.
const defaultBaseURL = "https://api.groq.com/openai/v1"

type groqGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *groqGenerator) Generate(ctx context.Context, system string, prompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{}

	if len(system) > 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:       g.options.Model,
		Messages:    messages,
		Temperature: g.options.Temperature,
		MaxTokens:   g.options.MaxTokens,
	}

	rsp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", generator.ErrNoContent
	}

	return rsp.Choices[0].Message.Content, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if len(options.BaseURL) == 0 {
		options.BaseURL = defaultBaseURL
	}

	g := &groqGenerator{
		options: options,
	}

	config := openai.DefaultConfig(options.ApiKey)
	config.BaseURL = options.BaseURL

	g.client = openai.NewClientWithConfig(config)

	return g
}
