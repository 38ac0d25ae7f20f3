package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedBlock matches a markdown code fence, optionally tagged "json",
// and captures its interior.
var fencedBlock = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// ExtractJSON pulls a JSON object out of possibly-noisy model output.
//
// Strategies are tried in a fixed order until one parses:
//  1. the whole string as JSON
//  2. the interior of the first fenced code block
//  3. the span from the first '{' to the last '}'
//
// Parse failures at each stage are swallowed; the function never panics
// and the same input always yields the same result. Returns ok=false if
// no strategy produced an object.
func ExtractJSON(raw string) (map[string]interface{}, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	// 1. Direct parse
	if obj, ok := parseObject(raw); ok {
		return obj, true
	}

	// 2. Fenced code block
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		if obj, ok := parseObject(strings.TrimSpace(m[1])); ok {
			return obj, true
		}
	}

	// 3. First '{' to last '}'
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if obj, ok := parseObject(raw[start : end+1]); ok {
			return obj, true
		}
	}

	return nil, false
}

func parseObject(s string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
