package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"inkwell/internal/application"
	"inkwell/internal/domain"
)

const fallbackTitleWords = 8

type classificationPayload struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Title      string  `json:"title"`
	Reasoning  string  `json:"reasoning"`
	Fields     struct {
		Context string   `json:"context"`
		Status  string   `json:"status"`
		Area    string   `json:"area"`
		Due     string   `json:"due"`
		Notes   string   `json:"notes"`
		Tasks   []string `json:"tasks"`
	} `json:"fields"`
}

// parseClassification decodes a model response into a classification.
// Models wrap JSON in fences or prose often enough that the payload is
// located positionally rather than trusting the whole body.
func parseClassification(content string) (*domain.Classification, error) {
	payload := extractJSON(content)
	if payload == "" {
		return nil, fmt.Errorf("%w: no JSON object in response", application.ErrMalformedResponse)
	}

	var p classificationPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrMalformedResponse, err)
	}

	category, ok := domain.ParseCategory(p.Category)
	if !ok {
		return nil, fmt.Errorf("%w: category %q", application.ErrMalformedResponse, p.Category)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v outside [0,1]", application.ErrMalformedResponse, p.Confidence)
	}

	return &domain.Classification{
		Category:   category,
		Confidence: p.Confidence,
		Title:      strings.TrimSpace(p.Title),
		Reasoning:  strings.TrimSpace(p.Reasoning),
		Fields: domain.Fields{
			Context: strings.TrimSpace(p.Fields.Context),
			Status:  strings.TrimSpace(p.Fields.Status),
			Area:    strings.TrimSpace(p.Fields.Area),
			Due:     strings.TrimSpace(p.Fields.Due),
			Notes:   strings.TrimSpace(p.Fields.Notes),
			Tasks:   cleanTasks(p.Fields.Tasks),
		},
	}, nil
}

// extractJSON returns the outermost JSON object in content, stripping
// markdown code fences first.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return content[start : end+1]
}

func cleanTasks(tasks []string) []string {
	var out []string
	for _, t := range tasks {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// fallbackTitle derives a title from the capture text when the model
// returns none.
func fallbackTitle(text string) string {
	words := strings.Fields(text)
	if len(words) > fallbackTitleWords {
		words = words[:fallbackTitleWords]
	}
	return strings.Join(words, " ")
}
