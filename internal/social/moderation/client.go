// Package moderation is the client for the text-moderation service.
// A transport failure degrades to "not allowed": a comment is never
// persisted without a positive moderation verdict.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://moderation-service:8080"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     log,
	}
}

type checkRequest struct {
	Text string `json:"text"`
}

type checkResponse struct {
	Allowed bool `json:"allowed"`
}

// IsTextAllowed asks the moderation service for a verdict on text.
func (c *Client) IsTextAllowed(ctx context.Context, text string) bool {
	body, err := json.Marshal(checkRequest{Text: text})
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/moderation/check", bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Warn("moderation: check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || resp.StatusCode != http.StatusOK {
		c.Logger.Warn("moderation: unexpected response", zap.Int("status", resp.StatusCode))
		return false
	}
	var out checkResponse
	if err := json.Unmarshal(b, &out); err != nil {
		c.Logger.Warn("moderation: decode failed", zap.Error(err))
		return false
	}
	return out.Allowed
}
