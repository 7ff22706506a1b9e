package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Skufu/GoPredict/internal/symptoms"
)

// Remote calls a model-serving sidecar that hosts the pickled scikit-learn
// model. One named row goes in and a label array comes out.
type Remote struct {
	endpoint string
	apiKey   string
	columns  []string
	http     *http.Client
}

var _ Classifier = (*Remote)(nil)

// NewRemote builds a client. columns are sent with every row so the sidecar
// can align them with its training frame.
func NewRemote(endpoint, apiKey string, columns []string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Remote{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		columns:  columns,
		http:     &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Columns  []string                 `json:"columns"`
	Features []symptoms.FeatureVector `json:"features"`
}

type predictResponse struct {
	Labels []int `json:"labels"`
}

// Predict sends a one-row matrix and returns the first label.
func (c *Remote) Predict(ctx context.Context, vec symptoms.FeatureVector) (int, error) {
	if len(c.columns) > 0 && len(vec) != len(c.columns) {
		return 0, fmt.Errorf("remote: feature width %d, expected %d", len(vec), len(c.columns))
	}

	var resp predictResponse
	payload := predictRequest{Columns: c.columns, Features: []symptoms.FeatureVector{vec}}
	if err := c.post(ctx, "/predict", payload, &resp); err != nil {
		return 0, err
	}
	if len(resp.Labels) == 0 {
		return 0, ErrNoLabel
	}
	return resp.Labels[0], nil
}

// Ping checks that the sidecar answers its health endpoint.
func (c *Remote) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

func (c *Remote) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Remote) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
