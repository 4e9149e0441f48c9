// Package normalizer turns free-form AI provider output into canonical
// records: it extracts the first balanced JSON object from raw text, repairs
// the malformed-JSON artifacts generative models commonly emit, coerces the
// parsed keys onto the canonical schema and computes the derived fields.
package normalizer

import (
	"encoding/json"
	"regexp"
	"strings"

	"meeting-insights-go/internal/logger"
)

var trailingComma = regexp.MustCompile(`,\s*([\]}])`)

// Extract locates the first complete top-level JSON object in raw provider
// text and parses it into a key-value mapping. Returns (nil, false) when no
// parsable object is found; callers treat that as "no data", not an error.
func Extract(raw string) (map[string]any, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	s = stripFences(s)

	start := strings.Index(s, "{")
	if start == -1 {
		return nil, false
	}

	depth := 0
	end := -1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end != -1 {
			break
		}
	}
	if end == -1 {
		return nil, false
	}

	candidate := trailingComma.ReplaceAllString(s[start:end+1], "$1")

	var out map[string]any
	if err := json.Unmarshal([]byte(candidate), &out); err == nil {
		return out, true
	}

	// Second chance: models sometimes emit single-quoted pseudo-JSON.
	repaired := strings.ReplaceAll(candidate, "'", `"`)
	if err := json.Unmarshal([]byte(repaired), &out); err != nil {
		logger.New().WithError(err).WithField("component", "normalizer").
			Warn("no parsable JSON object in provider output")
		return nil, false
	}
	return out, true
}

// stripFences removes a leading markdown fence marker with an optional
// language tag, and the matching closing fence.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		tag := strings.TrimSpace(s[:nl])
		// a bare tag like "json" or "yaml" belongs to the fence, not the body
		if tag == "" || !strings.ContainsAny(tag, "{}") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
