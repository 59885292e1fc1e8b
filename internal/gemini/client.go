package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/financeai/financeai-backend/internal"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Failure taxonomy for a generation call. Callers branch with errors.Is.
var (
	ErrMissingCredential = errors.New("GEMINI_API_KEY is not configured")
	ErrInvalidCredential = errors.New("gemini rejected the API key")
	ErrUpstream          = errors.New("gemini request failed")
)

// Client talks to the Gemini generateContent API. One outbound call per
// Generate invocation, no retries.
type Client struct {
	apiKey          string
	model           string
	baseURL         string
	maxOutputTokens int
	temperature     float64
	httpClient      *http.Client
	logger          *zap.Logger
}

type ClientConfig struct {
	APIKey          string
	Model           string
	BaseURL         string // overridable for tests
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration
	Logger          *zap.Logger
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 1024
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		apiKey:          cfg.APIKey,
		model:           cfg.Model,
		baseURL:         cfg.BaseURL,
		maxOutputTokens: cfg.MaxOutputTokens,
		temperature:     cfg.Temperature,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		logger:          cfg.Logger,
	}
}

func (c *Client) Model() string { return c.model }

// Generate assembles one request from the prior turns, the new user text
// and any attached documents, and returns the model's reply. The credential
// is checked before any network I/O.
func (c *Client) Generate(ctx context.Context, history []internal.Message, userText string, docs []internal.DocumentDescriptor) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingCredential
	}

	payload := generateRequest{
		SystemInstruction: &Content{Parts: []Part{{Text: systemInstruction}}},
		Contents:          append(BuildHistory(history), BuildUserContent(userText, docs)),
		GenerationConfig: GenerationConfig{
			MaxOutputTokens: c.maxOutputTokens,
			Temperature:     c.temperature,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("gemini call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.classifyFailure(resp)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	for _, cand := range out.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("%w: empty response", ErrUpstream)
}

// classifyFailure inspects an error response and maps API-key rejections to
// ErrInvalidCredential; everything else is ErrUpstream.
func (c *Client) classifyFailure(resp *http.Response) error {
	var ae apiError
	_ = json.NewDecoder(resp.Body).Decode(&ae)
	msg := ae.Error.Message
	if msg == "" {
		msg = resp.Status
	}
	c.logger.Warn("gemini error response",
		zap.Int("status", resp.StatusCode),
		zap.String("message", msg),
	)
	if strings.Contains(msg, "API key") || ae.Error.Status == "API_KEY_INVALID" {
		return fmt.Errorf("%w: %s", ErrInvalidCredential, msg)
	}
	return fmt.Errorf("%w: %s", ErrUpstream, msg)
}
