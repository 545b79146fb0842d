package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// parseTolerantJSON applies the fallback cascade used by the original
// extract_json (§9 DESIGN NOTES): direct parse, then a fenced ```json```
// block, then the widest {...} slice, then a balanced-brace scan that
// copes with a `{` appearing inside a string.
func parseTolerantJSON(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)

	var direct map[string]any
	if err := json.Unmarshal([]byte(raw), &direct); err == nil {
		return direct, nil
	}

	if m := fencedBlockPattern.FindStringSubmatch(raw); m != nil {
		var out map[string]any
		if err := json.Unmarshal([]byte(m[1]), &out); err == nil {
			return out, nil
		}
	}

	if first := strings.IndexByte(raw, '{'); first >= 0 {
		if last := strings.LastIndexByte(raw, '}'); last > first {
			var out map[string]any
			if err := json.Unmarshal([]byte(raw[first:last+1]), &out); err == nil {
				return out, nil
			}
		}
	}

	if obj, ok := balancedBraceScan(raw); ok {
		var out map[string]any
		if err := json.Unmarshal([]byte(obj), &out); err == nil {
			return out, nil
		}
	}

	return nil, fmt.Errorf("llm: could not parse JSON object from response (%d chars)", len(raw))
}

// balancedBraceScan walks the string tracking brace depth while honoring
// quoted strings, returning the first top-level balanced {...} span.
func balancedBraceScan(raw string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range raw {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return raw[start : i+1], true
				}
			}
		}
	}
	return "", false
}
