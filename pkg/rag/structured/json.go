// Package structured extracts and validates JSON payloads from language
// model output. Models wrap JSON in prose or markdown fences more often
// than not, so extraction is lenient while validation stays strict.
package structured

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-studymate-be/pkg/rag"

	"github.com/xeipuuv/gojsonschema"
)

// ExtractJSON pulls the first JSON object or array out of raw model output.
// It tries, in order: the whole string, a ```json fenced block, and the
// outermost brace or bracket pair.
func ExtractJSON(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty output", rag.ErrMalformedOutput)
	}
	if json.Valid([]byte(raw)) {
		return raw, nil
	}

	if fenced, ok := extractFenced(raw); ok && json.Valid([]byte(fenced)) {
		return fenced, nil
	}

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(raw, pair[0])
		end := strings.LastIndex(raw, pair[1])
		if start >= 0 && end > start {
			candidate := raw[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("%w: no valid JSON found in output", rag.ErrMalformedOutput)
}

func extractFenced(raw string) (string, bool) {
	start := strings.Index(raw, "```")
	if start < 0 {
		return "", false
	}
	rest := raw[start+3:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// Validate checks the payload against a JSON schema. Schema violations are
// reported as rag.ErrMalformedOutput so callers can retry generation.
func Validate(payload string, schema string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", rag.ErrMalformedOutput, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", rag.ErrMalformedOutput, strings.Join(msgs, "; "))
	}
	return nil
}

// Decode extracts, validates when schema is non-empty, and unmarshals into
// out in one step.
func Decode(raw string, schema string, out any) error {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if schema != "" {
		if err := Validate(payload, schema); err != nil {
			return err
		}
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("%w: %v", rag.ErrMalformedOutput, err)
	}
	return nil
}
