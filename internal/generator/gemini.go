package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/nao1215/wcagaudit/internal/request"
)

// DefaultRequestsPerMinute is the client-side quota for Gemini calls.
const DefaultRequestsPerMinute = 10

// Gemini generates reports with the Gemini API.
type Gemini struct {
	models  *genai.Models
	limiter *rate.Limiter
	logger  *slog.Logger
}

// GeminiOption configures a Gemini generator.
type GeminiOption func(*Gemini)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) GeminiOption {
	return func(g *Gemini) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRequestsPerMinute sets the client-side quota. Values <= 0 disable it.
func WithRequestsPerMinute(n int) GeminiOption {
	return func(g *Gemini) {
		g.limiter = newLimiter(n)
	}
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// NewGemini creates a Gemini generator authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &Gemini{
		models:  client.Models,
		limiter: newLimiter(DefaultRequestsPerMinute),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate sends req to Gemini and returns the response text.
// Waiting for the rate limiter honours ctx; the call itself does not.
func (g *Gemini) Generate(ctx context.Context, req request.Request) ([]byte, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}

	start := time.Now()
	g.logger.Debug("calling generative service",
		"model", req.Model,
		"urls", len(req.URLs),
		"brief_bytes", len(req.Brief))

	resp, err := g.models.GenerateContent(context.WithoutCancel(ctx), req.Model, genai.Text(req.Brief), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}

	text := resp.Text()
	g.logger.Debug("generative service responded",
		"model", req.Model,
		"duration", time.Since(start),
		"bytes", len(text))

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty response", ErrServiceFailure)
	}
	return []byte(text), nil
}
