package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"agrishop-chatbot-backend/config"
)

// TextGenerator is the single-call contract to the external generative
// language service. The call is best-effort: any error degrades to templates
// in the composer and is never surfaced to the user.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIService talks to the Google generative language REST endpoint.
type AIService struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	timeout    time.Duration
	httpClient *http.Client
}

var (
	aiOnce      sync.Once
	aiSingleton *AIService
)

// GetAIService returns the process-wide client handle, built lazily on first
// use and read-only afterwards.
func GetAIService() *AIService {
	aiOnce.Do(func() {
		aiSingleton = NewAIService(config.Get().AI)
	})
	return aiSingleton
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		apiKey:    cfg.APIKey,
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Configured reports whether an API key is present. Without one every call
// fails fast and the caller falls back to templates.
func (s *AIService) Configured() bool {
	return s.apiKey != ""
}

// Generate completes the prompt. The call is bounded by the configured
// timeout and is never retried: conversational latency matters more than
// completeness.
func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("generative service not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.7,
			"maxOutputTokens": s.maxTokens,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (%d): %s", resp.StatusCode, string(body))
	}

	// Decode into a typed shape so a malformed payload is an error, not a panic
	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("malformed AI response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
