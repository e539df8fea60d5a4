package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contextkeys"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
)

// HTTPScoringClient calls a remote model server that owns the trained artifact.
type HTTPScoringClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPScoringClient(endpoint string, timeout time.Duration) (*HTTPScoringClient, error) {
	return NewHTTPScoringClientWithHTTPClient(endpoint, &http.Client{Timeout: timeout})
}

func NewHTTPScoringClientWithHTTPClient(endpoint string, client *http.Client) (*HTTPScoringClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("model service endpoint is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPScoringClient{endpoint: endpoint, client: client}, nil
}

type ScoreRequest struct {
	Instances [][]float64 `json:"instances"`
}

type ScoreResponse struct {
	Predictions []float64 `json:"predictions"`
}

func (c *HTTPScoringClient) Score(ctx context.Context, batch [][]float64) ([]float64, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "HTTPScoringClient",
		"endpoint":  c.endpoint,
	})

	body, err := json.Marshal(ScoreRequest{Instances: batch})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	logger.Debug("Sending score request", port.Fields{"rows": len(batch)})
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("model service returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out ScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode score response: %w", err)
	}
	if len(out.Predictions) != len(batch) {
		return nil, fmt.Errorf("model service returned %d predictions for %d rows", len(out.Predictions), len(batch))
	}

	return out.Predictions, nil
}
