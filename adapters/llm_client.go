package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/miguelAagelcruzvargas/sara-intent/adapters/openai"
)

// ChatReasoner answers classifier prompts with an OpenAI-compatible chat
// model. It satisfies classifier.Reasoner.
type ChatReasoner struct {
	client       openai.LanguageModelClient
	systemPrompt string
	model        string
	temperature  *float32 // Optional temperature. If nil, omit from request.
}

const defaultModel = "gpt-4.1-mini"
const defaultSystemPrompt = `Eres el clasificador de intenciones de un asistente de voz en español.
Responde únicamente con un objeto JSON con las claves "intent" y "params".
No añadas texto fuera del objeto JSON.`

// maxCompletionTokens bounds the reply; a label plus a few params fit easily.
const maxCompletionTokens = 200

// NewChatReasoner creates a reasoner. A nil apiKey reads OPENAI_API_KEY,
// except when baseURL points at a local server, which may not need one.
func NewChatReasoner(apiKey *string, systemPrompt string, model string, baseURL string, temperature *float32) (*ChatReasoner, error) {
	key, err := loadEnvVar(apiKey, "OPENAI_API_KEY")
	if err != nil {
		if baseURL == "" {
			return nil, err
		}
		key = new(string)
	}

	return NewChatReasonerWith(openai.NewClient(*key, baseURL), systemPrompt, model, temperature), nil
}

// NewChatReasonerWith wraps an existing chat client.
func NewChatReasonerWith(client openai.LanguageModelClient, systemPrompt string, model string, temperature *float32) *ChatReasoner {
	instance := ChatReasoner{
		client:       client,
		systemPrompt: defaultSystemPrompt,
		model:        defaultModel,
		temperature:  temperature,
	}

	if systemPrompt != "" {
		instance.systemPrompt = systemPrompt
	}

	if model != "" {
		instance.model = model
	}

	return &instance
}

// Ask sends prompt to the model and returns its raw reply. kind names the
// backend as "chat:<model>".
func (c *ChatReasoner) Ask(ctx context.Context, prompt string) (string, string, error) {
	kind := "chat:" + c.model

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatMessage{
			{
				Role:    openai.MessageRoleSystem,
				Content: &c.systemPrompt,
			},
			{
				Role:    openai.MessageRoleUser,
				Content: &prompt,
			},
		},
		MaxCompletionTokens: maxCompletionTokens,
		Temperature:         c.temperature,
		ResponseFormat:      openai.ResponseFormatJSONObject,
	}

	resp, err := c.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", kind, fmt.Errorf("failed to get LLM response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", kind, errors.New("no response from LLM")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Text())
	if content == "" {
		return "", kind, errors.New("empty response from LLM")
	}

	return content, kind, nil
}
