package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"lockedin/internal/modules/assistant/dto"
	assistantout "lockedin/internal/modules/assistant/port/out"
	apperrors "lockedin/internal/platform/errors"
)

// HTTPChatClient posts chat requests to a lockedin gateway.
type HTTPChatClient struct {
	url        string
	httpClient *http.Client
}

// NewHTTPChatClient relies on the caller's context for its deadline.
func NewHTTPChatClient(url string, httpClient *http.Client) assistantout.ChatClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPChatClient{url: url, httpClient: httpClient}
}

func (c *HTTPChatClient) Send(ctx context.Context, deviceID string, req dto.ChatRequest) (dto.ChatResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return dto.ChatResponse{}, fmt.Errorf("marshal chat request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return dto.ChatResponse{}, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(dto.DeviceHeader, deviceID)

	body, status, err := do(c.httpClient, httpReq)
	if err != nil {
		return dto.ChatResponse{}, err
	}
	if status < 200 || status > 299 {
		return dto.ChatResponse{}, fmt.Errorf("%w: status %d: %s", apperrors.ErrAssistantUnavailable, status, errorText(body))
	}
	var resp dto.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return dto.ChatResponse{}, fmt.Errorf("%w: decode chat response: %w", apperrors.ErrAssistantUnavailable, err)
	}
	return resp, nil
}

func do(client *http.Client, req *http.Request) ([]byte, int, error) {
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, fmt.Errorf("%w: %w", apperrors.ErrAssistantTimeout, err)
		}
		return nil, 0, fmt.Errorf("%w: %w", apperrors.ErrAssistantUnavailable, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, fmt.Errorf("%w: %w", apperrors.ErrAssistantTimeout, err)
		}
		return nil, 0, fmt.Errorf("%w: read response: %w", apperrors.ErrAssistantUnavailable, err)
	}
	return body, resp.StatusCode, nil
}

// errorText prefers the gateway's {"error": ...} body over raw bytes.
func errorText(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return string(bytes.TrimSpace(body))
}
