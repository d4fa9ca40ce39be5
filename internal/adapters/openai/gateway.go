// Package openai implements the classification, summarization and
// transcription gateways against an OpenAI-compatible API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog"

	"inkwell/internal/application"
	"inkwell/internal/domain"
)

const (
	// DefaultBaseURL is the default OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com/v1"

	defaultModel         = "gpt-4o-mini"
	transcriptionModel   = "whisper-1"
	defaultClientTimeout = 90 * time.Second
)

// Gateway talks to an OpenAI-compatible API over raw HTTP. One Gateway
// serves all three capabilities; it is safe for concurrent use.
type Gateway struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	log        zerolog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithModel sets the chat model used for classification and summaries.
func WithModel(model string) GatewayOption {
	return func(g *Gateway) {
		if model != "" {
			g.model = model
		}
	}
}

// WithBaseURL sets a custom base URL for OpenAI-compatible APIs. This
// enables local models or other compatible services.
func WithBaseURL(baseURL string) GatewayOption {
	return func(g *Gateway) {
		if baseURL != "" {
			g.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the HTTP client. Tests point this at a local
// server.
func WithHTTPClient(client *http.Client) GatewayOption {
	return func(g *Gateway) { g.httpClient = client }
}

// WithLogger sets the gateway logger.
func WithLogger(log zerolog.Logger) GatewayOption {
	return func(g *Gateway) { g.log = log }
}

// NewGateway creates a Gateway. If apiKey is empty it falls back to the
// OPENAI_API_KEY environment variable; likewise OPENAI_BASE_URL for the
// base URL when no option overrides it.
func NewGateway(apiKey string, opts ...GatewayOption) (*Gateway, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (provide via parameter or OPENAI_API_KEY environment variable)")
	}

	g := &Gateway{
		httpClient: &http.Client{Timeout: defaultClientTimeout},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      defaultModel,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.baseURL == DefaultBaseURL {
		if envBaseURL := os.Getenv("OPENAI_BASE_URL"); envBaseURL != "" {
			g.baseURL = envBaseURL
		}
	}
	return g, nil
}

// Classify runs one capture through the classification prompt.
func (g *Gateway) Classify(ctx context.Context, text string) (*domain.Classification, error) {
	content, err := g.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(classifyPrompt),
		openai.UserMessage(text),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrClassifierUnavailable, err)
	}

	cls, err := parseClassification(content)
	if err != nil {
		g.log.Warn().Err(err).Str("raw", content).Msg("classification response rejected")
		return nil, err
	}
	if cls.Title == "" {
		cls.Title = fallbackTitle(text)
	}
	return cls, nil
}

// Summarize renders a digest fact sheet into short prose.
func (g *Gateway) Summarize(ctx context.Context, facts string) (string, error) {
	content, err := g.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(summarizePrompt),
		openai.UserMessage(facts),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrSummarizerUnavailable, err)
	}
	return content, nil
}

// Transcribe converts a voice capture to text.
func (g *Gateway) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "capture.ogg")
	if err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrTranscriberUnavailable, err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrTranscriberUnavailable, err)
	}
	if err := mw.WriteField("model", transcriptionModel); err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrTranscriberUnavailable, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrTranscriberUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrTranscriberUnavailable, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	raw, err := g.send(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrTranscriberUnavailable, err)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: transcription response: %v", application.ErrMalformedResponse, err)
	}
	return parsed.Text, nil
}

// complete sends a non-streaming chat completion and returns the first
// choice's content. Transport-level failures get one retry.
func (g *Gateway) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	reqBody := map[string]interface{}{
		"model":    g.model,
		"messages": messages,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			g.log.Debug().Msg("retrying chat completion")
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+g.apiKey)

		raw, err := g.send(req)
		if err != nil {
			lastErr = err
			continue
		}

		var parsed struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
		if len(parsed.Choices) == 0 {
			return "", fmt.Errorf("response has no choices")
		}
		return parsed.Choices[0].Message.Content, nil
	}
	return "", lastErr
}

func (g *Gateway) send(req *http.Request) ([]byte, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
