// File: services/cycle/predictor.go
package cycle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"femicare/config"
)

// HTTPPredictor calls the external model server that hosts the trained
// cycle-length regressor.
type HTTPPredictor struct {
	URL    string
	Client *http.Client
}

func NewHTTPPredictorFromConfig() *HTTPPredictor {
	return &HTTPPredictor{
		URL:    config.AppConfig.PredictionURL,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Prediction float64 `json:"prediction"`
}

func (p *HTTPPredictor) PredictCycleLength(ctx context.Context, features []float64) (float64, error) {
	if p.URL == "" {
		return 0, fmt.Errorf("prediction server not configured")
	}
	payload, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("prediction server returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode prediction response: %w", err)
	}
	if out.Prediction <= 0 {
		return 0, fmt.Errorf("prediction server returned a non-positive estimate")
	}
	return out.Prediction, nil
}
