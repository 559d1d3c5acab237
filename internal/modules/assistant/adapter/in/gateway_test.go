package in_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gateway "lockedin/internal/modules/assistant/adapter/in"
	"lockedin/internal/modules/assistant/service"
	"lockedin/internal/modules/assistant/usecase"
	"lockedin/internal/platform/logging"
)

type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
	block   bool
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func newServer(t *testing.T, completer *fakeCompleter, limit int, timeout time.Duration) *httptest.Server {
	t.Helper()
	coach := usecase.NewCoachInteractor(service.NewCoachService(completer, timeout))
	srv := httptest.NewServer(gateway.NewRouter(coach, gateway.RouterOptions{RateLimit: limit, RateWindow: time.Minute}, logging.Discard()))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, device, body string) (int, map[string]string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/chat", strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if device != "" {
		req.Header.Set("x-device-id", device)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	out := map[string]string{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

const validBody = `{"message":"  <i>how</i> do I ` + "```" + `pace` + "```" + ` myself? ","goals":[{"title":"Learn Go","progress":40,"status":"active"}],"sessions":[{"date":"2026-03-10","duration":25}]}`

func TestChatAnswers(t *testing.T) {
	t.Parallel()
	completer := &fakeCompleter{reply: "Block two sessions a day."}
	srv := newServer(t, completer, 60, time.Second)

	status, body := post(t, srv, "dev-1", validBody)
	if status != http.StatusOK || body["message"] != "Block two sessions a day." {
		t.Fatalf("unexpected response %d %v", status, body)
	}
	prompt := completer.prompts[0]
	for _, want := range []string{"- Learn Go: 40% (active)", "- 2026-03-10: 25 minutes", "USER QUESTION:\nhow do I pace myself?"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestChatRejectsBadRequests(t *testing.T) {
	t.Parallel()
	srv := newServer(t, &fakeCompleter{reply: "ok"}, 60, time.Second)

	cases := []struct {
		name   string
		device string
		body   string
		want   string
	}{
		{"missing device", "", validBody, "missing device id"},
		{"bad json", "d", `{"message":`, "invalid JSON"},
		{"missing message", "d", `{"goals":[],"sessions":[]}`, "invalid input"},
		{"message not string", "d", `{"message":5,"goals":[],"sessions":[]}`, "invalid input"},
		{"message too long", "d", fmt.Sprintf(`{"message":%q,"goals":[],"sessions":[]}`, strings.Repeat("a", 2001)), "invalid input"},
		{"goals not array", "d", `{"message":"hi","goals":{},"sessions":[]}`, "invalid goals format"},
		{"sessions missing", "d", `{"message":"hi","goals":[]}`, "invalid sessions format"},
	}
	for _, tc := range cases {
		status, body := post(t, srv, tc.device, tc.body)
		if status != http.StatusBadRequest || body["error"] != tc.want {
			t.Fatalf("%s: expected 400 %q, got %d %v", tc.name, tc.want, status, body)
		}
	}
}

func TestChatRateLimitsPerDevice(t *testing.T) {
	t.Parallel()
	srv := newServer(t, &fakeCompleter{reply: "ok"}, 2, time.Second)

	for i := 0; i < 2; i++ {
		if status, _ := post(t, srv, "dev-a", validBody); status != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, status)
		}
	}
	if status, body := post(t, srv, "dev-a", validBody); status != http.StatusTooManyRequests || body["error"] != "too many requests" {
		t.Fatalf("expected 429, got %d %v", status, body)
	}
	if status, _ := post(t, srv, "dev-b", validBody); status != http.StatusOK {
		t.Fatalf("other device should not be limited, got %d", status)
	}
}

func TestChatUpstreamFailures(t *testing.T) {
	t.Parallel()
	slow := newServer(t, &fakeCompleter{block: true}, 60, 20*time.Millisecond)
	if status, body := post(t, slow, "d", validBody); status != http.StatusGatewayTimeout || body["error"] != "assistant timeout" {
		t.Fatalf("expected 504, got %d %v", status, body)
	}
	broken := newServer(t, &fakeCompleter{err: fmt.Errorf("upstream 500")}, 60, time.Second)
	if status, body := post(t, broken, "d", validBody); status != http.StatusServiceUnavailable || body["error"] != "assistant unavailable" {
		t.Fatalf("expected 503, got %d %v", status, body)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	srv := newServer(t, &fakeCompleter{}, 60, time.Second)
	resp, err := srv.Client().Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health %d %v", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}
