package analyzer

import (
	"os"
	"strings"

	"meeting-insights-go/internal/schema"
)

// Template placeholders. Plain string substitution, not fmt verbs: canonical
// field names contain '%'.
const (
	PlaceholderFile       = "{{FILE}}"
	PlaceholderTranscript = "{{TRANSCRIPT}}"
)

// builtinTemplate is the strict fallback prompt used when no external
// template is supplied.
const builtinTemplate = `You are an expert sales meeting analysis engine.

Analyze the MEETING TRANSCRIPT below and produce a structured record.

Rules:
- Return ONLY one valid JSON object, nothing else.
- The object must contain EXACTLY the following keys, no more, no less:
{{FIELDS}}
- Every value must be a string or a number.
- The five score fields ({{SCORES}}) are integers from 0 to 10.
- Use "N/A" for anything the transcript does not establish.
- Ground every value in the transcript. Do NOT invent names, numbers or dates.
- DO NOT include commentary.
- DO NOT wrap the JSON in backticks.

SOURCE FILE: {{FILE}}

MEETING TRANSCRIPT:
"""{{TRANSCRIPT}}"""
`

// BuiltinTemplate renders the fallback template with the canonical field list.
func BuiltinTemplate() string {
	var keys strings.Builder
	for _, f := range schema.Fields {
		keys.WriteString("  - " + f + "\n")
	}
	t := strings.Replace(builtinTemplate, "{{FIELDS}}", strings.TrimRight(keys.String(), "\n"), 1)
	return strings.Replace(t, "{{SCORES}}", strings.Join(schema.SubScores, ", "), 1)
}

// LoadTemplate reads an externally supplied prompt template, falling back to
// the built-in strict template when path is empty or the file is unreadable
// or lacks the transcript placeholder.
func LoadTemplate(path string) string {
	if path == "" {
		return BuiltinTemplate()
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), PlaceholderTranscript) {
		return BuiltinTemplate()
	}
	return string(data)
}

// BuildPrompt fills the template with the meeting context.
func BuildPrompt(template, contextName, transcript string) string {
	p := strings.ReplaceAll(template, PlaceholderFile, contextName)
	return strings.ReplaceAll(p, PlaceholderTranscript, transcript)
}
