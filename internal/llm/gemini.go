package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements Client on top of Google's Gemini SDK. It is the
// primary provider for extraction, planning and itinerary generation.
type GeminiClient struct {
	client *genai.Client
	model  string
	temp   float64
}

// NewGeminiClient creates a Gemini-backed Client. apiKey comes from
// config.Config.LLM.GeminiKey.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("llm: missing gemini api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: defaultGeminiModel, temp: 0.4}, nil
}

// Close releases the underlying Gemini client.
func (g *GeminiClient) Close() {
	g.client.Close()
}

func (g *GeminiClient) newModel(opts ChatOptions) *genai.GenerativeModel {
	m := g.client.GenerativeModel(g.model)
	temp := float32(g.temp)
	if opts.Temperature != 0 {
		temp = float32(opts.Temperature)
	}
	m.SetTemperature(temp)
	if opts.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.JSONMode {
		m.ResponseMIMEType = "application/json"
	}
	return m
}

// Chat sends a multi-turn conversation to Gemini. System messages are
// folded into the first user turn; Gemini's SystemInstruction field would
// work too, but inline folding keeps this symmetric with Complete.
func (g *GeminiClient) Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error) {
	model := g.newModel(opts)

	var b strings.Builder
	for _, msg := range messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", strings.ToUpper(msg.Role), msg.Content)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		return "", fmt.Errorf("llm: gemini generate content: %w", err)
	}
	return extractGeminiText(resp)
}

// Complete sends a single prompt, optionally preceded by a system prompt.
func (g *GeminiClient) Complete(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	msgs := []ChatMessage{{Role: "user", Content: prompt}}
	return g.Chat(ctx, msgs, opts)
}

// ExtractJSON requests low-temperature JSON-mode output and parses it
// through the tolerant cascade in jsonextract.go.
func (g *GeminiClient) ExtractJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error) {
	var msgs []ChatMessage
	if systemPrompt != "" {
		msgs = append(msgs, ChatMessage{Role: "system", Content: systemPrompt})
	}
	msgs = append(msgs, ChatMessage{Role: "user", Content: prompt})

	raw, err := g.Chat(ctx, msgs, ChatOptions{Temperature: 0.1, JSONMode: true})
	if err != nil {
		return nil, err
	}
	return parseTolerantJSON(raw)
}

func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("llm: gemini returned no candidates")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("llm: gemini returned empty text parts")
	}
	return b.String(), nil
}
