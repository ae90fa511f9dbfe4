package llm

import (
	"encoding/json"
	"strings"
)

// StripFences removes a Markdown code fence wrapper from a completion.
// Models routinely wrap JSON in ```json ... ``` despite being told not to.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}

	return strings.TrimSpace(s)
}

// ExtractJSON strips fences and validates the result is parseable JSON.
// Returns ErrEmptyCompletion / ErrInvalidJSON so callers can log the
// failure kind before falling back.
func ExtractJSON(raw string) (string, error) {
	s := StripFences(raw)
	if s == "" {
		return "", ErrEmptyCompletion
	}
	if !json.Valid([]byte(s)) {
		return "", ErrInvalidJSON
	}
	return s, nil
}

// DecodeJSON extracts strict JSON from a completion and unmarshals it
// into v. Unmarshal failures after validation map to ErrInvalidJSON
// (shape mismatch is as unusable as a syntax error).
func DecodeJSON(raw string, v any) error {
	s, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return ErrInvalidJSON
	}
	return nil
}
