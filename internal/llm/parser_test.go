package llm

import (
	"context"
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  [1,2,3]  ", "[1,2,3]"},
	}

	for _, c := range cases {
		if got := StripFences(c.in); got != c.want {
			t.Fatalf("StripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractJSONRejectsProse(t *testing.T) {
	_, err := ExtractJSON("Sure! Here are your insights: buy less milk.")
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestExtractJSONRejectsEmpty(t *testing.T) {
	_, err := ExtractJSON("```json\n```")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestDecodeJSONShapeMismatch(t *testing.T) {
	var out []struct {
		Title string `json:"title"`
	}
	err := DecodeJSON(`{"title":"not an array"}`, &out)
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestDecodeJSONFencedArray(t *testing.T) {
	var out []struct {
		Title string `json:"title"`
	}
	raw := "```json\n[{\"title\":\"Reduce dairy waste\"}]\n```"
	if err := DecodeJSON(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Title != "Reduce dairy waste" {
		t.Fatalf("unexpected decode result: %+v", out)
	}
}

func TestDisabledClientFails(t *testing.T) {
	c := NewDisabledClient()
	_, err := c.Complete(context.Background(), "anything")
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
