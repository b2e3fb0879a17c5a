package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spigell/resume-agent/internal/logger"
	"github.com/spigell/resume-agent/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel          = "gemini-2.0-flash-lite"
	defaultEmbeddingModel = "text-embedding-004"
	defaultTemperature    = 0.2
	defaultMaxRetries     = 2

	retryBaseDelay = 2 * time.Second
)

// wait is stubbed in tests to avoid real backoff delays.
var wait = utils.WaitFor

// Client wraps the Google GenAI client behind the pipeline's Generator and
// Embedder contracts. Generation uses a fixed temperature configured at
// construction; transient API errors are retried with backoff.
type Client struct {
	api            generativeAPI
	model          string
	embeddingModel string
	maxRetries     int
	logger         *zap.Logger
}

// Config configures a Gemini client.
type Config struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	// Temperature applies to all generation calls. The zero value selects
	// the default (0.2).
	Temperature float64
	MaxRetries  int
}

// generativeAPI is the part of the GenAI SDK the client depends on. It exists
// so tests can substitute a fake backend.
type generativeAPI interface {
	generate(ctx context.Context, model string, prompt string) (string, error)
	embed(ctx context.Context, model string, texts []string) ([][]float32, error)
}

// NewClient creates a new Client configured for the Gemini API backend.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	embeddingModel := strings.TrimSpace(cfg.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	temperature := float32(cfg.Temperature)
	if temperature == 0 {
		temperature = defaultTemperature
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		api:            &genaiAPI{client: genaiClient, temperature: temperature},
		model:          model,
		embeddingModel: embeddingModel,
		maxRetries:     maxRetries,
		logger:         logger.WithProviderFields(log, "gemini", model),
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the textual response.
// Temporary API errors (rate limits, 5xx) are retried up to MaxRetries times.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			c.logger.Debug("retrying gemini call",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := wait(ctx, delay); err != nil {
				return "", err
			}
		}

		output, err := c.api.generate(ctx, c.model, prompt)
		if err == nil {
			return output, nil
		}

		lastErr = err
		if !isTemporary(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("gemini call failed after %d attempts: %w", c.maxRetries, lastErr)
}

// Embed converts the texts into embedding vectors using the embedding model.
// The whole batch is sent in a single request.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := wait(ctx, retryBaseDelay<<(attempt-1)); err != nil {
				return nil, err
			}
		}

		vectors, err := c.api.embed(ctx, c.embeddingModel, texts)
		if err == nil {
			return vectors, nil
		}

		lastErr = err
		if !isTemporary(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("gemini embedding failed after %d attempts: %w", c.maxRetries, lastErr)
}

// Model returns the generation model identifier.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// isTemporary reports whether the error is worth retrying.
func isTemporary(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// genaiAPI is the production implementation of generativeAPI.
type genaiAPI struct {
	client      *genai.Client
	temperature float32
}

func (a *genaiAPI) generate(ctx context.Context, model string, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(a.temperature),
	}

	resp, err := a.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (a *genaiAPI) embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	resp, err := a.client.Models.EmbedContent(ctx, model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini api returned %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("gemini api returned empty embedding at index %d", i)
		}
		vectors[i] = embedding.Values
	}

	return vectors, nil
}
