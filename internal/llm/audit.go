package llm

import (
	"context"
	"sync/atomic"
	"time"

	"travelcore/internal/corelog"
)

const logTruncateChars = 50000

// Audit wraps a Client with the call-numbered logging trail required by
// §5 ("every LLM call is logged with call number, timing, parameters, and
// response truncated at 50000 chars"), mirroring llm_client.py's
// _log_llm_call/_llm_call_counter pair.
type Audit struct {
	inner    Client
	provider string
	calls    int64
}

// NewAudit wraps inner, tagging every logged line with provider (e.g.
// "gemini", "anthropic").
func NewAudit(inner Client, provider string) *Audit {
	return &Audit{inner: inner, provider: provider}
}

func (a *Audit) Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error) {
	start := time.Now()
	resp, err := a.inner.Chat(ctx, messages, opts)
	a.log("chat", start, resp, err)
	return resp, err
}

func (a *Audit) Complete(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	start := time.Now()
	resp, err := a.inner.Complete(ctx, prompt, opts)
	a.log("complete", start, resp, err)
	return resp, err
}

func (a *Audit) ExtractJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error) {
	start := time.Now()
	result, err := a.inner.ExtractJSON(ctx, prompt, systemPrompt)
	callNum := atomic.AddInt64(&a.calls, 1)
	durationMs := time.Since(start).Milliseconds()
	if err != nil {
		corelog.Error("LLM call #%d | %s/extract_json | %dms | error: %v", callNum, a.provider, durationMs, err)
		return result, err
	}
	corelog.LLMCall(callNum, a.provider, "extract_json", durationMs, len(prompt))
	return result, err
}

func (a *Audit) log(callType string, start time.Time, resp string, err error) {
	callNum := atomic.AddInt64(&a.calls, 1)
	durationMs := time.Since(start).Milliseconds()
	if err != nil {
		corelog.Error("LLM call #%d | %s/%s | %dms | error: %v", callNum, a.provider, callType, durationMs, err)
		return
	}
	truncated := resp
	if len(truncated) > logTruncateChars {
		truncated = truncated[:logTruncateChars]
	}
	corelog.LLMCall(callNum, a.provider, callType, durationMs, len(resp))
	corelog.Debug("%s", truncated)
}
