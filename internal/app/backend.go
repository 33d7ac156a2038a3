package app

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Backend is a single chat completion call. The model id is passed per call
// so one backend serves both the chat model and the title model.
type Backend interface {
	Chat(ctx context.Context, model string, messages []Message) (string, error)
}

// OllamaBackend talks to a local Ollama server.
type OllamaBackend struct {
	llm *ollama.LLM
}

func NewOllamaBackend(host string) (*OllamaBackend, error) {
	llm, err := ollama.New(ollama.WithServerURL(host))
	if err != nil {
		return nil, err
	}
	return &OllamaBackend{llm: llm}, nil
}

func (b *OllamaBackend) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		var role llms.ChatMessageType
		switch m.Role {
		case RoleSystem:
			role = llms.ChatMessageTypeSystem
		case RoleAssistant:
			role = llms.ChatMessageTypeAI
		default:
			role = llms.ChatMessageTypeHuman
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	resp, err := b.llm.GenerateContent(ctx, content, llms.WithModel(model))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}
	return resp.Choices[0].Content, nil
}
