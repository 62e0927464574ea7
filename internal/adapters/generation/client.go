package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jasveersingh-de/opportunity/internal/domain"
)

// Request describes a generation call to the external AI service. The
// service receives the user's profile and, when present, the target job.
type Request struct {
	Type    domain.ArtifactType `json:"type"`
	Profile *domain.Profile     `json:"profile"`
	Job     *domain.Job         `json:"job,omitempty"`
}

// Result is the generated document plus its provenance. The AI service has
// no say in approval; content always lands unapproved.
type Result struct {
	Content       string `json:"content"`
	Model         string `json:"model"`
	PromptVersion string `json:"prompt_version"`
}

type Client interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) Generate(ctx context.Context, req Request) (*Result, error) {
	var result Result
	if err := c.post(ctx, "/api/v1/generate", req, &result); err != nil {
		return nil, err
	}
	if result.Content == "" {
		return nil, fmt.Errorf("generation service returned empty content")
	}
	return &result, nil
}

func (c *httpClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	op := func() error {
		body, err := json.Marshal(payload)
		if err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", c.baseURL, path), bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		res, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()
		if res.StatusCode >= 500 {
			return fmt.Errorf("generation service error: %d", res.StatusCode)
		}
		if res.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("generation request rejected: %d", res.StatusCode))
		}
		if out != nil {
			if err := json.NewDecoder(res.Body).Decode(out); err != nil {
				return backoff.Permanent(err)
			}
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 20 * time.Second
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}
