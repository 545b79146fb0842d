package llm

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-3-5-sonnet-20241022"

// AnthropicClient implements Client on top of Claude Messages. It serves as
// the Itinerary Verifier's critic-phase model (§4.6, Open Question 1) —
// deliberately a different provider from the primary Gemini client so the
// critic pass is not just the planner re-asking itself.
type AnthropicClient struct {
	msg   *sdk.MessageService
	model string
	maxTokens int
}

// NewAnthropicClient builds a Claude-backed Client from an API key.
func NewAnthropicClient(apiKey string) (*AnthropicClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("llm: missing anthropic api key")
	}
	c := sdk.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{msg: &c.Messages, model: defaultAnthropicModel, maxTokens: 2048}, nil
}

func (a *AnthropicClient) Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error) {
	var system []sdk.TextBlockParam
	var conv []sdk.MessageParam

	for _, m := range messages {
		switch m.Role {
		case "system":
			system = append(system, sdk.TextBlockParam{Text: m.Content})
		case "assistant":
			conv = append(conv, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		default:
			conv = append(conv, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		}
	}
	if len(conv) == 0 {
		return "", fmt.Errorf("llm: anthropic requires at least one user message")
	}

	maxTokens := a.maxTokens
	if opts.MaxTokens > 0 {
		maxTokens = opts.MaxTokens
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(a.model),
		MaxTokens: int64(maxTokens),
		Messages:  conv,
	}
	if len(system) > 0 {
		params.System = system
	}
	if opts.Temperature > 0 {
		params.Temperature = sdk.Float(opts.Temperature)
	}

	resp, err := a.msg.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("llm: anthropic messages.new: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("llm: anthropic returned no text content")
	}
	return b.String(), nil
}

func (a *AnthropicClient) Complete(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	return a.Chat(ctx, []ChatMessage{{Role: "user", Content: prompt}}, opts)
}

func (a *AnthropicClient) ExtractJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error) {
	var msgs []ChatMessage
	if systemPrompt != "" {
		msgs = append(msgs, ChatMessage{Role: "system", Content: systemPrompt})
	}
	msgs = append(msgs, ChatMessage{Role: "user", Content: prompt})

	raw, err := a.Chat(ctx, msgs, ChatOptions{Temperature: 0.1})
	if err != nil {
		return nil, err
	}
	return parseTolerantJSON(raw)
}
