package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"creativesync/internal/config/configs"
	"creativesync/internal/core/port"
)

var errNoAPIKey = errors.New("no api key configured")

// Client implements port.TextGenerator on the Gemini generateContent API.
// The API key can be replaced at runtime; until one is set every call
// fails with port.ErrCollaboratorUnavailable.
type Client struct {
	cfg        configs.Gemini
	httpClient *http.Client
	logger     *zap.Logger

	mu     sync.RWMutex
	client *genai.Client
}

// New returns a client. An empty cfg.APIKey is not an error.
func New(cfg configs.Gemini, logger *zap.Logger) (*Client, error) {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	if cfg.APIKey != "" {
		if err := c.UpdateAPIKey(cfg.APIKey); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// UpdateAPIKey swaps the underlying SDK client for one using key.
func (c *Client) UpdateAPIKey(key string) error {
	cc := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.cfg.BaseURL,
			APIVersion: c.cfg.APIVersion,
		},
	}
	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}
	c.mu.Lock()
	c.client = client
	c.mu.Unlock()
	c.logger.Info("gemini api key activated", zap.String("model", c.cfg.Model))
	return nil
}

// Configured reports whether an API key is active.
func (c *Client) Configured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client != nil
}

// Generate sends prompt as a single user turn and returns the text of the
// first part of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil {
		return "", fmt.Errorf("%w: %w", port.ErrCollaboratorUnavailable, errNoAPIKey)
	}

	resp, err := client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), generationConfig())
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %w", port.ErrCollaboratorUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: response has no candidates", port.ErrCollaboratorUnavailable)
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty candidate text", port.ErrCollaboratorUnavailable)
	}
	return text, nil
}

func generationConfig() *genai.GenerateContentConfig {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	safety := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		safety = append(safety, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.9),
		TopK:            genai.Ptr[float32](40),
		TopP:            genai.Ptr[float32](0.95),
		MaxOutputTokens: 2048,
		SafetySettings:  safety,
	}
}
