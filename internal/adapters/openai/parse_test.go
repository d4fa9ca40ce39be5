package openai

import (
	"errors"
	"testing"

	"inkwell/internal/application"
	"inkwell/internal/domain"
)

func TestParseClassification(t *testing.T) {
	raw := `{
		"category": "Projects",
		"confidence": 0.87,
		"title": "Call Sarah about Q3 budget",
		"reasoning": "Concrete next action with a deadline.",
		"fields": {
			"status": "active",
			"tasks": ["Call Sarah to discuss numbers", "  ", "Send revised sheet"]
		}
	}`

	cls, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parseClassification: %v", err)
	}
	if cls.Category != domain.CategoryProjects {
		t.Errorf("category = %s, want Projects", cls.Category)
	}
	if cls.Confidence != 0.87 {
		t.Errorf("confidence = %v, want 0.87", cls.Confidence)
	}
	if cls.Title != "Call Sarah about Q3 budget" {
		t.Errorf("title = %q", cls.Title)
	}
	if len(cls.Fields.Tasks) != 2 {
		t.Errorf("tasks = %v, blank entries must be dropped", cls.Fields.Tasks)
	}
}

func TestParseClassificationUnwrapsFencesAndProse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "json code fence",
			raw:  "```json\n{\"category\": \"ideas\", \"confidence\": 0.9, \"title\": \"Blue ocean\"}\n```",
		},
		{
			name: "bare code fence",
			raw:  "```\n{\"category\": \"ideas\", \"confidence\": 0.9, \"title\": \"Blue ocean\"}\n```",
		},
		{
			name: "surrounding prose",
			raw:  "Sure! Here is the classification:\n{\"category\": \"ideas\", \"confidence\": 0.9, \"title\": \"Blue ocean\"}\nLet me know if you need more.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := parseClassification(tt.raw)
			if err != nil {
				t.Fatalf("parseClassification: %v", err)
			}
			if cls.Category != domain.CategoryIdeas {
				t.Errorf("category = %s, want Ideas", cls.Category)
			}
		})
	}
}

func TestParseClassificationRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose only", "I could not classify that note."},
		{"broken json", `{"category": "Projects", "confidence":`},
		{"unknown category", `{"category": "shopping", "confidence": 0.9, "title": "x"}`},
		{"confidence above one", `{"category": "Admin", "confidence": 1.4, "title": "x"}`},
		{"negative confidence", `{"category": "Admin", "confidence": -0.1, "title": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseClassification(tt.raw)
			if !errors.Is(err, application.ErrMalformedResponse) {
				t.Errorf("err = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestFallbackTitle(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"buy milk", "buy milk"},
		{"one two three four five six seven eight nine ten", "one two three four five six seven eight"},
	}
	for _, tt := range tests {
		if got := fallbackTitle(tt.text); got != tt.want {
			t.Errorf("fallbackTitle(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
