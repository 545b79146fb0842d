// Package corelog is a thin wrapper over the standard library logger,
// matching the emoji-tagged one-line style the rest of the stack already
// prints with (see middleware.Logging).
package corelog

import "log"

func Info(format string, args ...any) {
	log.Printf("ℹ️ "+format, args...)
}

func Warn(format string, args ...any) {
	log.Printf("⚠️ "+format, args...)
}

func Error(format string, args ...any) {
	log.Printf("❌ "+format, args...)
}

func Debug(format string, args ...any) {
	log.Printf("🔧 "+format, args...)
}

// LLMCall logs a single LLM round trip: call number, provider, call type
// duration and response length. The response body itself is not logged
// here; llm.Audit truncates it and logs it separately at debug level.
func LLMCall(callNum int64, provider, callType string, durationMs int64, responseChars int) {
	log.Printf("📤 LLM call #%d | %s/%s | %dms | response: %d chars", callNum, provider, callType, durationMs, responseChars)
}
