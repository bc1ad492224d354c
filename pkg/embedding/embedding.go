// Package embedding provides text embedding generation against an
// OpenAI-compatible embeddings API, plus a bounded in-memory vector cache.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// System generates embedding vectors for document text. All vectors produced
// by one System come from the same model and share a dimension, so they are
// directly comparable.
type System interface {
	// Embed returns the embedding vector for text, truncated to the
	// configured character budget before the external call.
	Embed(ctx context.Context, text string) ([]float64, error)
	// Dimensions returns the vector dimension for the configured model.
	Dimensions() int
}

type client struct {
	cfg    *Config
	http   *http.Client
	logger *slog.Logger
}

// New creates an embedding system from the given configuration.
func New(cfg *Config, logger *slog.Logger) System {
	return &client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.TimeoutDuration()},
		logger: logger.With("system", "embedding"),
	}
}

type embeddingRequest struct {
	Input          string `json:"input"`
	Model          string `json:"model"`
	EncodingFormat string `json:"encoding_format,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *client) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	text = truncate(text, c.cfg.MaxChars)

	body, err := json.Marshal(embeddingRequest{
		Input:          text,
		Model:          c.cfg.Model,
		EncodingFormat: "float",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.cfg.BaseURL+"/embeddings",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("create embedding request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embedding response: %w", err)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse embedding response: %w", err)
	}

	if parsed.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderFailure, resp.StatusCode)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrProviderFailure)
	}

	return parsed.Data[0].Embedding, nil
}

func (c *client) Dimensions() int {
	return c.cfg.Dimensions
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit]
}
