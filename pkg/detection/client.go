package detection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/classpulse/backend/pkg/config"
)

// Client captures detection frames from the upstream face/hand-raise service
type Client interface {
	Capture(ctx context.Context) (*Frame, error)
	Healthy(ctx context.Context) error
}

// realClient talks HTTP to the detection service
type realClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a detection client. With useMock the returned client
// synthesizes frames locally instead of calling the upstream service.
func NewClient(cfg *config.DetectionConfig) Client {
	if cfg.UseMock {
		return newMockClient()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &realClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Capture requests one detection frame from the upstream service
func (c *realClient) Capture(ctx context.Context) (*Frame, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/frame", nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detection capture failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("detection service returned status %d", resp.StatusCode)
	}

	var frame Frame
	if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
		return nil, fmt.Errorf("decode detection frame: %w", err)
	}
	if frame.CapturedAt.IsZero() {
		frame.CapturedAt = time.Now()
	}
	return &frame, nil
}

// Healthy pings the upstream service
func (c *realClient) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("detection health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("detection service returned status %d", resp.StatusCode)
	}
	return nil
}
