package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	assistantout "lockedin/internal/modules/assistant/port/out"
	apperrors "lockedin/internal/platform/errors"
)

type completeRequest struct {
	Prompt string `json:"prompt"`
}

type completeResponse struct {
	Text string `json:"text"`
}

// HTTPCompleter calls a JSON completion endpoint: {"prompt"} in, {"text"} out.
type HTTPCompleter struct {
	url        string
	httpClient *http.Client
}

func NewHTTPCompleter(url string, httpClient *http.Client) assistantout.Completer {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPCompleter{url: url, httpClient: httpClient}
}

func (c *HTTPCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	data, err := json.Marshal(completeRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := do(c.httpClient, req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: upstream status %d", apperrors.ErrAssistantUnavailable, status)
	}
	var resp completeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decode completion: %w", apperrors.ErrAssistantUnavailable, err)
	}
	if resp.Text == "" {
		return "", fmt.Errorf("%w: empty completion", apperrors.ErrAssistantUnavailable)
	}
	return resp.Text, nil
}
